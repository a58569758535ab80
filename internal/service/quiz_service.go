package service

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/woogihooni/exmJo/internal/domain/entity"
	"github.com/woogihooni/exmJo/internal/domain/repository"
	apperrors "github.com/woogihooni/exmJo/internal/pkg/errors"
	"github.com/woogihooni/exmJo/internal/service/quizmanager"
)

// QuizService собирает пулы по выбору пользователя и ведет текущую сессию.
// Ошибка выбора не трогает текущую сессию: новый движок подменяет старый
// только после успешного старта.
type QuizService struct {
	bank       *QuestionBank
	review     *ReviewService
	resume     *ResumeService
	resumeRepo repository.ResumeRepository

	mu     sync.Mutex
	engine *quizmanager.Engine
}

// NewQuizService создает сервис викторины
func NewQuizService(
	bank *QuestionBank,
	review *ReviewService,
	resume *ResumeService,
	resumeRepo repository.ResumeRepository,
) *QuizService {
	return &QuizService{
		bank:       bank,
		review:     review,
		resume:     resume,
		resumeRepo: resumeRepo,
	}
}

// Bank возвращает банк вопросов
func (s *QuizService) Bank() *QuestionBank { return s.bank }

// Review возвращает сервис отметок
func (s *QuizService) Review() *ReviewService { return s.review }

// Engine возвращает движок текущей сессии или nil, если сессий еще не было
func (s *QuizService) Engine() *quizmanager.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine
}

// StartNormal начинает обычную сессию по раунду и предметам
func (s *QuizService) StartNormal(round string, subjects []string) (*quizmanager.QuestionView, error) {
	round = strings.TrimSpace(round)
	if round == "" {
		return nil, apperrors.ErrNoRoundSelected
	}
	if len(subjects) == 0 {
		return nil, apperrors.ErrNoSubjectSelected
	}

	pool := s.bank.FilterPool(round, subjects)
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: round %s, subjects %v", apperrors.ErrEmptyPool, round, subjects)
	}

	if _, err := s.start(pool, entity.SessionModeNormal, 0); err != nil {
		return nil, err
	}
	return s.CurrentView()
}

// StartNextRound начинает обычную сессию следующего раунда после завершенной обычной.
// Пустой subjects означает предметы только что пройденного пула.
func (s *QuizService) StartNextRound(subjects []string) (*quizmanager.QuestionView, error) {
	finished, err := s.completedEngine()
	if err != nil {
		return nil, err
	}

	if finished.Mode() != entity.SessionModeNormal {
		return nil, fmt.Errorf("%w: finished session is in %s mode", apperrors.ErrNoNextRound, finished.Mode())
	}

	pool := finished.Pool()
	next, ok := s.bank.NextRound(pool[0].Round)
	if !ok {
		return nil, apperrors.ErrNoNextRound
	}
	if len(subjects) == 0 {
		subjects = entity.DistinctSubjects(pool)
	}

	nextPool := s.bank.FilterPool(next, subjects)
	if len(nextPool) == 0 {
		return nil, fmt.Errorf("%w: round %s, subjects %v", apperrors.ErrEmptyPool, next, subjects)
	}

	log.Printf("[QuizService] Переход к следующему раунду %s", next)
	if _, err := s.start(nextPool, entity.SessionModeNormal, 0); err != nil {
		return nil, err
	}
	return s.CurrentView()
}

// StartReview начинает повтор вопросов, отвеченных неверно в завершенной сессии
func (s *QuizService) StartReview() (*quizmanager.QuestionView, error) {
	finished, err := s.completedEngine()
	if err != nil {
		return nil, err
	}

	pool := finished.Incorrect()
	if len(pool) == 0 {
		return nil, apperrors.ErrNoIncorrectQuestions
	}

	if _, err := s.start(pool, entity.SessionModeReview, 0); err != nil {
		return nil, err
	}
	return s.CurrentView()
}

// StartChecked начинает сессию по отмеченным вопросам выбранных предметов
func (s *QuizService) StartChecked(subjects []string) (*quizmanager.QuestionView, error) {
	if len(subjects) == 0 {
		return nil, apperrors.ErrNoSubjectSelected
	}

	pool := s.review.BuildCheckedPool(subjects)
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: no flagged questions for subjects %v", apperrors.ErrEmptyPool, subjects)
	}

	if _, err := s.start(pool, entity.SessionModeChecked, 0); err != nil {
		return nil, err
	}
	return s.CurrentView()
}

// Resume восстанавливает последнюю обычную сессию. positionReset сообщает,
// что сохраненная позиция не поместилась в новый пул и сессия начата сначала.
func (s *QuizService) Resume() (view *quizmanager.QuestionView, positionReset bool, err error) {
	record, err := s.resume.LoadResume()
	if err != nil {
		return nil, false, err
	}

	pool := s.resume.BuildResumePool(record)
	if len(pool) == 0 {
		return nil, false, fmt.Errorf("%w: round %s, subjects %v", apperrors.ErrEmptyPool, record.Round, record.Subjects)
	}

	positionReset, err = s.start(pool, entity.SessionModeNormal, record.Position)
	if err != nil {
		return nil, false, err
	}
	if positionReset {
		log.Printf("[QuizService] Сохраненная позиция %d больше пула (%d), начинаем сначала", record.Position, len(pool))
	}

	view, err = s.CurrentView()
	return view, positionReset, err
}

// CurrentView возвращает текущий вопрос с отметкой и заметкой
func (s *QuizService) CurrentView() (*quizmanager.QuestionView, error) {
	engine, err := s.activeEngine()
	if err != nil {
		return nil, err
	}
	view, err := engine.Current()
	if err != nil {
		return nil, err
	}
	id := view.Question.Identity()
	view.Flagged = s.review.IsFlagged(id)
	view.Annotation = s.review.Annotation(id)
	return view, nil
}

// SubmitAnswer проверяет выбранный вариант текущего вопроса
func (s *QuizService) SubmitAnswer(option int) (quizmanager.Verdict, error) {
	engine, err := s.activeEngine()
	if err != nil {
		return quizmanager.Verdict{}, err
	}
	return engine.SubmitAnswer(option)
}

// RevealAnswer показывает ответ текущего вопроса
func (s *QuizService) RevealAnswer() (quizmanager.Verdict, error) {
	engine, err := s.activeEngine()
	if err != nil {
		return quizmanager.Verdict{}, err
	}
	return engine.RevealAnswer()
}

// Advance переходит к следующему вопросу
func (s *QuizService) Advance() (bool, error) {
	engine, err := s.activeEngine()
	if err != nil {
		return false, err
	}
	return engine.Advance()
}

// Retreat возвращается к предыдущему вопросу
func (s *QuizService) Retreat() error {
	engine, err := s.activeEngine()
	if err != nil {
		return err
	}
	return engine.Retreat()
}

// Result возвращает итог завершенной сессии
func (s *QuizService) Result() (*quizmanager.Result, error) {
	engine, err := s.activeEngine()
	if err != nil {
		return nil, err
	}
	return engine.Result()
}

// ToggleFlagCurrent переключает отметку текущего вопроса
func (s *QuizService) ToggleFlagCurrent() (bool, error) {
	view, err := s.CurrentView()
	if err != nil {
		return false, err
	}
	return s.review.ToggleFlag(view.Question.Identity())
}

// AnnotateCurrent сохраняет заметку к текущему вопросу
func (s *QuizService) AnnotateCurrent(text string) error {
	view, err := s.CurrentView()
	if err != nil {
		return err
	}
	return s.review.SetAnnotation(view.Question.Identity(), text)
}

// start запускает новый движок и делает его текущим только при успехе
func (s *QuizService) start(pool []entity.Question, mode entity.SessionMode, startIndex int) (bool, error) {
	engine := quizmanager.NewEngine(&quizmanager.Dependencies{
		ResumeRepo: s.resumeRepo,
		Rounds:     s.bank,
	})
	positionReset, err := engine.Start(pool, mode, startIndex)
	if err != nil {
		log.Printf("[QuizService] Не удалось начать сессию (%s): %v", mode, err)
		return false, err
	}

	s.mu.Lock()
	s.engine = engine
	s.mu.Unlock()
	return positionReset, nil
}

func (s *QuizService) activeEngine() (*quizmanager.Engine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return nil, apperrors.ErrInvalidState
	}
	return s.engine, nil
}

func (s *QuizService) completedEngine() (*quizmanager.Engine, error) {
	engine, err := s.activeEngine()
	if err != nil {
		return nil, err
	}
	if engine.State() != quizmanager.StateCompleted {
		return nil, apperrors.ErrInvalidState
	}
	return engine, nil
}
