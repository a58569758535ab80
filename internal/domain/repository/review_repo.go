package repository

import (
	"github.com/woogihooni/exmJo/internal/domain/entity"
)

// ReviewRepository хранит отметки "проверить позже" и заметки к вопросам.
// Чтение никогда не возвращает ошибку: поврежденные данные считаются пустыми.
type ReviewRepository interface {
	IsFlagged(id entity.Identity) bool
	SetFlag(id entity.Identity, flagged bool) error
	// Flags возвращает копию множества отмеченных ключей
	Flags() map[string]bool

	Annotation(id entity.Identity) string
	// SetAnnotation сохраняет заметку; пустой текст удаляет ее
	SetAnnotation(id entity.Identity, text string) error
	// Annotations возвращает копию всех заметок
	Annotations() map[string]string
}
