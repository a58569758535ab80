package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/woogihooni/exmJo/internal/handler/helper"
	apperrors "github.com/woogihooni/exmJo/internal/pkg/errors"
	"github.com/woogihooni/exmJo/internal/service"
	"github.com/woogihooni/exmJo/internal/service/quizmanager"
)

const helpText = `Commands:
  rounds                      list rounds
  subjects [round]            list subjects (of a round)
  start <round> <s1,s2|all>   start a quiz for a round and subjects
  checked <s1,s2|all>         quiz over flagged questions
  resume                      continue the last unfinished quiz
  1..4                        answer the current question
  a                           show the answer (counts as incorrect)
  n / p                       next / previous question
  f                           flag or unflag the current question
  note [text]                 set the note of the current question (empty removes it)
  next [s1,s2]                after a quiz: start the next round
  review                      after a quiz: retry incorrect questions
  export [text|csv|xlsx]      print flagged questions with notes
  help                        this text
  quit                        exit`

// TerminalHandler - интерактивный интерфейс викторины в терминале
type TerminalHandler struct {
	quizService   *service.QuizService
	exportService *service.ExportService
	in            *bufio.Scanner
	out           io.Writer
}

// NewTerminalHandler создает обработчик, читающий команды из in и пишущий в out
func NewTerminalHandler(
	quizService *service.QuizService,
	exportService *service.ExportService,
	in io.Reader,
	out io.Writer,
) *TerminalHandler {
	return &TerminalHandler{
		quizService:   quizService,
		exportService: exportService,
		in:            bufio.NewScanner(in),
		out:           out,
	}
}

// Run читает команды до quit, конца ввода или отмены контекста
func (h *TerminalHandler) Run(ctx context.Context) error {
	h.printf("Question bank: %d questions, rounds: %s\n",
		h.quizService.Bank().Len(), strings.Join(h.quizService.Bank().Rounds(), ", "))
	h.printf("Type 'help' for commands.\n")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		h.printf("> ")
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return nil
		}
		if quit := h.Dispatch(h.in.Text()); quit {
			return nil
		}
	}
}

// Dispatch выполняет одну команду. Возвращает true для выхода.
func (h *TerminalHandler) Dispatch(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	cmd, args, _ := strings.Cut(line, " ")
	args = strings.TrimSpace(args)

	switch strings.ToLower(cmd) {
	case "quit", "q", "exit":
		return true
	case "help", "h", "?":
		h.printf("%s\n", helpText)
	case "rounds":
		h.printf("%s\n", strings.Join(h.quizService.Bank().Rounds(), "\n"))
	case "subjects":
		h.listSubjects(args)
	case "start":
		h.start(args)
	case "checked":
		h.showView(h.quizService.StartChecked(h.parseSubjects(args, "")))
	case "resume":
		h.resume()
	case "1", "2", "3", "4":
		option, _ := strconv.Atoi(cmd)
		h.answer(h.quizService.SubmitAnswer(option))
	case "a", "answer":
		h.answer(h.quizService.RevealAnswer())
	case "n", "next":
		if h.sessionCompleted() {
			h.showView(h.quizService.StartNextRound(h.parseSubjects(args, "")))
			return false
		}
		if args != "" {
			h.printf("Subjects for the next round can be chosen only after the quiz is finished.\n")
			return false
		}
		h.advance()
	case "p", "prev":
		if err := h.quizService.Retreat(); err != nil {
			h.handleError(err)
			return false
		}
		h.showCurrent()
	case "f", "flag":
		flagged, err := h.quizService.ToggleFlagCurrent()
		if err != nil {
			h.handleError(err)
			return false
		}
		if flagged {
			h.printf("Flagged.\n")
		} else {
			h.printf("Flag removed.\n")
		}
	case "note":
		if err := h.quizService.AnnotateCurrent(args); err != nil {
			h.handleError(err)
			return false
		}
		h.printf("Note saved.\n")
	case "review":
		h.showView(h.quizService.StartReview())
	case "export":
		if _, err := h.exportService.Export(args, h.out); err != nil {
			h.handleError(err)
		}
	default:
		h.printf("Unknown command %q. Type 'help' for commands.\n", cmd)
	}
	return false
}

func (h *TerminalHandler) listSubjects(round string) {
	bank := h.quizService.Bank()
	if round == "" {
		h.printf("%s\n", strings.Join(bank.Subjects(), "\n"))
		return
	}
	h.printf("%s\n", strings.Join(bank.SubjectsForRound(round), "\n"))
}

func (h *TerminalHandler) start(args string) {
	round, rest, _ := strings.Cut(args, " ")
	h.showView(h.quizService.StartNormal(round, h.parseSubjects(strings.TrimSpace(rest), round)))
}

// parseSubjects разбирает список через запятую; "all" - все предметы раунда (или банка)
func (h *TerminalHandler) parseSubjects(raw, round string) []string {
	if strings.EqualFold(raw, "all") {
		if round != "" {
			return h.quizService.Bank().SubjectsForRound(round)
		}
		return h.quizService.Bank().Subjects()
	}
	subjects := make([]string, 0)
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			subjects = append(subjects, s)
		}
	}
	return subjects
}

func (h *TerminalHandler) resume() {
	view, positionReset, err := h.quizService.Resume()
	if err != nil {
		h.handleError(err)
		return
	}
	if positionReset {
		h.printf("The question bank has changed; starting from the first question.\n")
	}
	h.render(view)
}

func (h *TerminalHandler) answer(verdict quizmanager.Verdict, err error) {
	if err != nil {
		h.handleError(err)
		return
	}
	switch {
	case verdict.AlreadyAnswered:
		h.printf("Already answered.\n")
	case verdict.IsCorrect:
		h.printf("Correct!\n")
	default:
		h.printf("Incorrect.\n")
	}
	if verdict.HasCorrectOption {
		h.printf("Answer: %d\n", verdict.CorrectOption)
	} else {
		h.printf("The correct answer for this question is unknown.\n")
	}
	if view, err := h.quizService.CurrentView(); err == nil && view.Question.Explanation != nil {
		h.printf("Explanation: %s\n", *view.Question.Explanation)
	}
}

func (h *TerminalHandler) advance() {
	completed, err := h.quizService.Advance()
	if err != nil {
		h.handleError(err)
		return
	}
	if !completed {
		h.showCurrent()
		return
	}

	res, err := h.quizService.Result()
	if err != nil {
		h.handleError(err)
		return
	}
	h.printf("Result: %d of %d correct (%.1f%%)\n", res.Score, res.TotalQuestions, res.Percentage)
	if res.HasNextRound {
		h.printf("Next round %s is available: 'next [subjects]'.\n", res.NextRound)
	}
	if res.HasIncorrect {
		h.printf("%d incorrect questions: 'review' to retry them.\n", res.IncorrectCount)
	}
}

func (h *TerminalHandler) sessionCompleted() bool {
	engine := h.quizService.Engine()
	return engine != nil && engine.State() == quizmanager.StateCompleted
}

func (h *TerminalHandler) showCurrent() {
	h.showView(h.quizService.CurrentView())
}

func (h *TerminalHandler) showView(view *quizmanager.QuestionView, err error) {
	if err != nil {
		h.handleError(err)
		return
	}
	h.render(view)
}

func (h *TerminalHandler) render(view *quizmanager.QuestionView) {
	q := view.Question
	h.printf("\n[%s] %s  #%d  (%d/%d, %s)\n", q.Round, q.Subject, q.QuestionNumber, view.Position+1, view.Total, view.Mode)
	if view.Flagged {
		h.printf("* flagged\n")
	}
	h.printf("%s\n", q.Body)
	if q.Exhibit != nil {
		h.printf("  <%s>\n", *q.Exhibit)
	}
	for _, opt := range helper.ConvertOptionsToObjects(&q) {
		marker := " "
		if view.Outcome.SelectedOption == opt.ID {
			marker = ">"
		}
		h.printf("%s %d) %s\n", marker, opt.ID, opt.Text)
	}
	if view.Outcome.Answered {
		h.printf("(answered)\n")
	}
	if view.Annotation != "" {
		h.printf("Note: %s\n", view.Annotation)
	}
	if view.IsLast {
		h.printf("Last question: 'n' shows the result.\n")
	}
}

// handleError показывает пользователю сообщение; непредвиденные ошибки логируются
func (h *TerminalHandler) handleError(err error) {
	switch {
	case errors.Is(err, apperrors.ErrNoRoundSelected):
		h.printf("Please select a round.\n")
	case errors.Is(err, apperrors.ErrNoSubjectSelected):
		h.printf("Please select at least one subject.\n")
	case errors.Is(err, apperrors.ErrEmptyPool):
		h.printf("No questions match the selection.\n")
	case errors.Is(err, apperrors.ErrNotYetAnswered):
		h.printf("Answer the question or show the answer first.\n")
	case errors.Is(err, apperrors.ErrAtFirstQuestion):
		h.printf("This is the first question.\n")
	case errors.Is(err, apperrors.ErrInvalidOption):
		h.printf("Choose an option from 1 to 4.\n")
	case errors.Is(err, apperrors.ErrNoNextRound):
		h.printf("There is no next round.\n")
	case errors.Is(err, apperrors.ErrNoIncorrectQuestions):
		h.printf("There are no incorrect questions.\n")
	case errors.Is(err, apperrors.ErrNoResume):
		h.printf("There is no unfinished quiz.\n")
	case errors.Is(err, apperrors.ErrInvalidState):
		h.printf("Not available right now.\n")
	default:
		log.Printf("[TerminalHandler] Ошибка: %v", err)
		h.printf("Error: %v\n", err)
	}
}

func (h *TerminalHandler) printf(format string, args ...interface{}) {
	fmt.Fprintf(h.out, format, args...)
}
