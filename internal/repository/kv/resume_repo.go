package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/woogihooni/exmJo/internal/domain/entity"
	"github.com/woogihooni/exmJo/internal/domain/repository"
	apperrors "github.com/woogihooni/exmJo/internal/pkg/errors"
)

// ResumeRepo реализует repository.ResumeRepository: одна JSON-запись под фиксированным ключом
type ResumeRepo struct {
	store repository.KeyValueStore
	key   string
}

// NewResumeRepo создает репозиторий позиции продолжения
func NewResumeRepo(store repository.KeyValueStore, prefix string) *ResumeRepo {
	return &ResumeRepo{store: store, key: prefix + ResumeKey}
}

// Load возвращает сохраненную запись; поврежденная запись считается отсутствующей
func (r *ResumeRepo) Load() (*entity.ResumeRecord, error) {
	raw, err := r.store.Get(r.key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read resume record: %w", err)
	}

	var record entity.ResumeRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		log.Printf("[ResumeRepo] WARNING: запись продолжения повреждена, игнорируем: %v", err)
		return nil, apperrors.ErrNotFound
	}
	if record.Round == "" || record.Position < 0 {
		log.Printf("[ResumeRepo] WARNING: запись продолжения некорректна (round=%q, position=%d), игнорируем", record.Round, record.Position)
		return nil, apperrors.ErrNotFound
	}
	return &record, nil
}

// Save перезаписывает запись
func (r *ResumeRepo) Save(record *entity.ResumeRecord) error {
	if record == nil {
		return fmt.Errorf("resume record cannot be nil")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode resume record: %w", err)
	}
	return r.store.Set(r.key, string(data))
}

// Clear удаляет запись
func (r *ResumeRepo) Clear() error {
	return r.store.Delete(r.key)
}
