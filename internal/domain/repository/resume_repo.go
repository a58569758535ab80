package repository

import (
	"github.com/woogihooni/exmJo/internal/domain/entity"
)

// ResumeRepository хранит единственную запись для продолжения сессии
type ResumeRepository interface {
	// Load возвращает apperrors.ErrNotFound, если записи нет
	Load() (*entity.ResumeRecord, error)
	Save(record *entity.ResumeRecord) error
	Clear() error
}
