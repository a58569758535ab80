package quizmanager

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/woogihooni/exmJo/internal/domain/entity"
	apperrors "github.com/woogihooni/exmJo/internal/pkg/errors"
)

// Engine ведет одну сессию прохождения вопросов: пул, позицию, счет,
// результаты по вопросам и накопитель неверных ответов.
// Результаты хранятся в самой сессии, записи банка не изменяются.
type Engine struct {
	deps *Dependencies

	mu        sync.Mutex
	sessionID string
	state     EngineState
	mode      entity.SessionMode
	pool      []entity.Question
	position  int
	score     int
	outcomes  map[entity.Identity]Outcome
	incorrect []entity.Question
	seen      map[entity.Identity]struct{}
}

// NewEngine создает движок в состоянии выбора
func NewEngine(deps *Dependencies) *Engine {
	if deps == nil {
		deps = &Dependencies{}
	}
	return &Engine{
		deps:     deps,
		state:    StateSelecting,
		outcomes: make(map[entity.Identity]Outcome),
		seen:     make(map[entity.Identity]struct{}),
	}
}

// Start начинает сессию на пуле вопросов. Пул упорядочивается по номеру вопроса.
// Если startIndex выходит за пределы пула, сессия начинается с первого вопроса
// и positionReset равен true. При ошибке состояние движка не меняется.
func (e *Engine) Start(pool []entity.Question, mode entity.SessionMode, startIndex int) (positionReset bool, err error) {
	if !mode.IsValid() {
		return false, fmt.Errorf("%w: %q", apperrors.ErrInvalidMode, mode)
	}
	if len(pool) == 0 {
		return false, apperrors.ErrEmptyPool
	}

	ordered := make([]entity.Question, len(pool))
	copy(ordered, pool)
	entity.SortByQuestionNumber(ordered)

	ids := make(map[entity.Identity]struct{}, len(ordered))
	for i := range ordered {
		id := ordered[i].Identity()
		if _, dup := ids[id]; dup {
			return false, fmt.Errorf("%w: %s", apperrors.ErrDuplicateQuestion, id.Key())
		}
		ids[id] = struct{}{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.sessionID = uuid.NewString()
	e.mode = mode
	e.pool = ordered
	e.score = 0
	e.outcomes = make(map[entity.Identity]Outcome, len(ordered))
	e.incorrect = nil
	e.seen = make(map[entity.Identity]struct{})

	e.position = startIndex
	if startIndex < 0 || startIndex >= len(ordered) {
		log.Printf("[SessionEngine] Сессия %s: позиция %d вне пула из %d вопросов, начинаем с первого",
			e.sessionID, startIndex, len(ordered))
		e.position = 0
		positionReset = true
	}
	e.state = StateInProgress

	log.Printf("[SessionEngine] Сессия %s начата: режим %s, вопросов %d, позиция %d",
		e.sessionID, mode, len(ordered), e.position)

	e.saveResumeLocked()
	return positionReset, nil
}

// SubmitAnswer проверяет выбранный вариант (1..4) текущего вопроса.
// Повторная проверка уже отвеченного вопроса ничего не меняет и возвращает прежний результат.
func (e *Engine) SubmitAnswer(option int) (Verdict, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateInProgress {
		return Verdict{}, apperrors.ErrInvalidState
	}

	q := &e.pool[e.position]
	correct, ok := e.correctOption(q)
	if prev, answered := e.outcomes[q.Identity()]; answered {
		return Verdict{CorrectOption: correct, HasCorrectOption: ok, IsCorrect: prev.IsCorrect, AlreadyAnswered: true}, nil
	}
	if option < 1 || option > entity.OptionSlots {
		return Verdict{}, fmt.Errorf("%w: %d", apperrors.ErrInvalidOption, option)
	}

	isCorrect := ok && option == correct
	e.record(q, Outcome{Answered: true, IsCorrect: isCorrect, SelectedOption: option})

	return Verdict{CorrectOption: correct, HasCorrectOption: ok, IsCorrect: isCorrect}, nil
}

// RevealAnswer показывает правильный ответ без выбора варианта.
// Непроверенный вопрос при этом засчитывается как неверный.
func (e *Engine) RevealAnswer() (Verdict, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateInProgress {
		return Verdict{}, apperrors.ErrInvalidState
	}

	q := &e.pool[e.position]
	correct, ok := e.correctOption(q)
	if prev, answered := e.outcomes[q.Identity()]; answered {
		return Verdict{CorrectOption: correct, HasCorrectOption: ok, IsCorrect: prev.IsCorrect, AlreadyAnswered: true}, nil
	}

	e.record(q, Outcome{Answered: true, Revealed: true})
	return Verdict{CorrectOption: correct, HasCorrectOption: ok}, nil
}

// Advance переходит к следующему вопросу. completed равен true,
// если вопросы закончились и сессия завершена.
func (e *Engine) Advance() (completed bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateInProgress {
		return false, apperrors.ErrInvalidState
	}
	if _, answered := e.outcomes[e.pool[e.position].Identity()]; !answered {
		return false, apperrors.ErrNotYetAnswered
	}

	e.position++
	if e.position == len(e.pool) {
		e.state = StateCompleted
		log.Printf("[SessionEngine] Сессия %s завершена: %d из %d", e.sessionID, e.score, len(e.pool))
		if e.mode == entity.SessionModeNormal && e.deps.ResumeRepo != nil {
			if err := e.deps.ResumeRepo.Clear(); err != nil {
				log.Printf("[SessionEngine] WARNING: не удалось удалить запись продолжения: %v", err)
			}
		}
		return true, nil
	}

	e.saveResumeLocked()
	return false, nil
}

// Retreat возвращается к предыдущему вопросу. Его результат сохраняется,
// повторно ответить на него нельзя.
func (e *Engine) Retreat() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateInProgress {
		return apperrors.ErrInvalidState
	}
	if e.position == 0 {
		return apperrors.ErrAtFirstQuestion
	}

	e.position--
	e.saveResumeLocked()
	return nil
}

// Result возвращает итог завершенной сессии
func (e *Engine) Result() (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateCompleted {
		return nil, apperrors.ErrInvalidState
	}

	total := len(e.pool)
	res := &Result{
		TotalQuestions: total,
		Score:          e.score,
		Percentage:     math.Round(float64(e.score)/float64(total)*1000) / 10,
		HasIncorrect:   len(e.incorrect) > 0,
		IncorrectCount: len(e.incorrect),
	}
	if e.mode == entity.SessionModeNormal && e.deps.Rounds != nil {
		res.NextRound, res.HasNextRound = e.deps.Rounds.NextRound(e.pool[0].Round)
	}
	return res, nil
}

// Current возвращает текущий вопрос и его результат
func (e *Engine) Current() (*QuestionView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateInProgress {
		return nil, apperrors.ErrInvalidState
	}
	q := e.pool[e.position]
	return &QuestionView{
		Question: q,
		Mode:     e.mode,
		Position: e.position,
		Total:    len(e.pool),
		IsLast:   e.position == len(e.pool)-1,
		Outcome:  e.outcomes[q.Identity()],
	}, nil
}

// SessionID возвращает идентификатор текущей сессии (пустой до первого Start)
func (e *Engine) SessionID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessionID
}

func (e *Engine) State() EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Mode() entity.SessionMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Engine) Position() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// Pool возвращает копию упорядоченного пула
func (e *Engine) Pool() []entity.Question {
	e.mu.Lock()
	defer e.mu.Unlock()
	pool := make([]entity.Question, len(e.pool))
	copy(pool, e.pool)
	return pool
}

// Incorrect возвращает вопросы, отвеченные неверно в этой сессии, в порядке появления
func (e *Engine) Incorrect() []entity.Question {
	e.mu.Lock()
	defer e.mu.Unlock()
	incorrect := make([]entity.Question, len(e.incorrect))
	copy(incorrect, e.incorrect)
	return incorrect
}

// Outcome возвращает результат вопроса в текущей сессии
func (e *Engine) Outcome(id entity.Identity) (Outcome, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	o, ok := e.outcomes[id]
	return o, ok
}

func (e *Engine) correctOption(q *entity.Question) (int, bool) {
	correct, ok := NormalizeAnswer(q.CorrectAnswer)
	if !ok {
		log.Printf("[SessionEngine] WARNING: правильный ответ вопроса %s не распознан (%v), вопрос нельзя решить верно",
			q.Identity().Key(), q.CorrectAnswer)
	}
	return correct, ok
}

// record фиксирует первую проверку вопроса. Вызывается под e.mu.
func (e *Engine) record(q *entity.Question, outcome Outcome) {
	id := q.Identity()
	e.outcomes[id] = outcome
	if outcome.IsCorrect {
		e.score++
		return
	}
	if e.mode == entity.SessionModeReview {
		return
	}
	if _, dup := e.seen[id]; dup {
		return
	}
	e.seen[id] = struct{}{}
	e.incorrect = append(e.incorrect, *q)
}

// saveResumeLocked сохраняет позицию обычной сессии. Ошибка записи только логируется.
func (e *Engine) saveResumeLocked() {
	if e.mode != entity.SessionModeNormal || e.deps.ResumeRepo == nil {
		return
	}
	record := &entity.ResumeRecord{
		Round:    e.pool[0].Round,
		Subjects: entity.DistinctSubjects(e.pool),
		Position: e.position,
	}
	if err := e.deps.ResumeRepo.Save(record); err != nil {
		log.Printf("[SessionEngine] WARNING: не удалось сохранить позицию сессии %s: %v", e.sessionID, err)
	}
}
