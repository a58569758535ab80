package entity

// SessionMode определяет, из чего собран пул сессии
type SessionMode string

// Режимы сессии
const (
	SessionModeNormal  SessionMode = "normal"  // выбор раунда и предметов
	SessionModeReview  SessionMode = "review"  // повтор неверных ответов
	SessionModeChecked SessionMode = "checked" // вопросы, отмеченные пользователем
)

// IsValid проверяет, что режим известен
func (m SessionMode) IsValid() bool {
	switch m {
	case SessionModeNormal, SessionModeReview, SessionModeChecked:
		return true
	}
	return false
}

// ResumeRecord - сохраненная позиция последней обычной сессии
type ResumeRecord struct {
	Round    string   `json:"round"`
	Subjects []string `json:"subjects"`
	Position int      `json:"position"`
}

// ExportEntry - строка экспорта заметок по отмеченному вопросу
type ExportEntry struct {
	Round          string `json:"round"`
	QuestionNumber int    `json:"number"`
	Text           string `json:"explanation"`
}
