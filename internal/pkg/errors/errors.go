// Package errors содержит сентинельные ошибки приложения.
// Проверять их следует через errors.Is.
package errors

import "errors"

var (
	// ErrNotFound - ключ или запись отсутствует в хранилище
	ErrNotFound = errors.New("not found")

	// Ошибки выбора (исправляются пользователем, сессия не меняется)
	ErrNoRoundSelected   = errors.New("no round selected")
	ErrNoSubjectSelected = errors.New("no subject selected")
	ErrEmptyPool         = errors.New("no questions match the selection")

	// Ошибки последовательности действий в сессии
	ErrNotYetAnswered  = errors.New("current question has not been answered yet")
	ErrAtFirstQuestion = errors.New("already at the first question")
	ErrInvalidState    = errors.New("operation is not valid in the current session state")
	ErrInvalidOption   = errors.New("option index is out of range")

	ErrDuplicateQuestion    = errors.New("duplicate question identity in pool")
	ErrInvalidMode          = errors.New("unknown session mode")
	ErrNoNextRound          = errors.New("there is no next round")
	ErrNoIncorrectQuestions = errors.New("there are no incorrect questions to review")
	ErrNoResume             = errors.New("there is no session to resume")
)
