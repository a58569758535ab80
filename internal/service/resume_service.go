package service

import (
	"errors"
	"fmt"

	"github.com/woogihooni/exmJo/internal/domain/entity"
	"github.com/woogihooni/exmJo/internal/domain/repository"
	apperrors "github.com/woogihooni/exmJo/internal/pkg/errors"
)

// ResumeService восстанавливает прерванную обычную сессию
type ResumeService struct {
	repo repository.ResumeRepository
	bank *QuestionBank
}

// NewResumeService создает сервис продолжения
func NewResumeService(repo repository.ResumeRepository, bank *QuestionBank) *ResumeService {
	return &ResumeService{repo: repo, bank: bank}
}

// LoadResume возвращает сохраненную запись или ErrNoResume
func (s *ResumeService) LoadResume() (*entity.ResumeRecord, error) {
	record, err := s.repo.Load()
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoResume
		}
		return nil, fmt.Errorf("failed to load resume record: %w", err)
	}
	return record, nil
}

// BuildResumePool заново фильтрует банк по раунду и предметам записи.
// Если банк изменился, состав пула может отличаться.
func (s *ResumeService) BuildResumePool(record *entity.ResumeRecord) []entity.Question {
	if record == nil {
		return nil
	}
	return s.bank.FilterPool(record.Round, record.Subjects)
}
