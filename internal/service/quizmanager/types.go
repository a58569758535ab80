package quizmanager

import (
	"github.com/woogihooni/exmJo/internal/domain/entity"
	"github.com/woogihooni/exmJo/internal/domain/repository"
)

// EngineState - состояние сессии
type EngineState string

const (
	StateSelecting  EngineState = "selecting"   // пул еще не выбран
	StateInProgress EngineState = "in_progress" // идут вопросы
	StateCompleted  EngineState = "completed"   // показан результат
)

// RoundIndex знает порядок раундов банка
type RoundIndex interface {
	NextRound(round string) (string, bool)
}

// Dependencies содержит зависимости движка сессии. Любое поле может быть nil:
// без ResumeRepo позиция не сохраняется, без Rounds продолжение недоступно.
type Dependencies struct {
	ResumeRepo repository.ResumeRepository
	Rounds     RoundIndex
}

// Outcome - результат вопроса в рамках одной сессии
type Outcome struct {
	Answered       bool `json:"answered"`
	IsCorrect      bool `json:"is_correct"`
	Revealed       bool `json:"revealed"`        // ответ подсмотрен без выбора варианта
	SelectedOption int  `json:"selected_option"` // 0, если вариант не выбирался
}

// Verdict возвращается после проверки ответа для отображения подсказки
type Verdict struct {
	CorrectOption    int  `json:"correct_option"`
	HasCorrectOption bool `json:"has_correct_option"`
	IsCorrect        bool `json:"is_correct"`
	// AlreadyAnswered - вопрос был проверен раньше, состояние не изменилось
	AlreadyAnswered bool `json:"already_answered"`
}

// Result - итог завершенной сессии
type Result struct {
	TotalQuestions int     `json:"total_questions"`
	Score          int     `json:"score"`
	Percentage     float64 `json:"percentage"`
	NextRound      string  `json:"next_round,omitempty"`
	HasNextRound   bool    `json:"has_next_round"`
	HasIncorrect   bool    `json:"has_incorrect"`
	IncorrectCount int     `json:"incorrect_count"`
}

// QuestionView - текущий вопрос вместе с положением в пуле.
// Flagged и Annotation заполняет сервис, движок о них не знает.
type QuestionView struct {
	Question   entity.Question    `json:"question"`
	Mode       entity.SessionMode `json:"mode"`
	Position   int                `json:"position"`
	Total      int                `json:"total"`
	IsLast     bool               `json:"is_last"`
	Outcome    Outcome            `json:"outcome"`
	Flagged    bool               `json:"flagged"`
	Annotation string             `json:"annotation,omitempty"`
}
