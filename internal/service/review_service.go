package service

import (
	"log"
	"sort"

	"github.com/woogihooni/exmJo/internal/domain/entity"
	"github.com/woogihooni/exmJo/internal/domain/repository"
)

// ReviewService управляет отметками и заметками к вопросам.
// Они не зависят от сессий и сохраняются сразу.
type ReviewService struct {
	repo repository.ReviewRepository
	bank *QuestionBank
}

// NewReviewService создает сервис отметок
func NewReviewService(repo repository.ReviewRepository, bank *QuestionBank) *ReviewService {
	return &ReviewService{repo: repo, bank: bank}
}

// SetFlag ставит или снимает отметку
func (s *ReviewService) SetFlag(id entity.Identity, flagged bool) error {
	if err := s.repo.SetFlag(id, flagged); err != nil {
		log.Printf("[ReviewService] Ошибка при сохранении отметки %s: %v", id.Key(), err)
		return err
	}
	return nil
}

// ToggleFlag переключает отметку и возвращает новое значение
func (s *ReviewService) ToggleFlag(id entity.Identity) (bool, error) {
	flagged := !s.repo.IsFlagged(id)
	if err := s.SetFlag(id, flagged); err != nil {
		return !flagged, err
	}
	return flagged, nil
}

// IsFlagged проверяет отметку вопроса
func (s *ReviewService) IsFlagged(id entity.Identity) bool {
	return s.repo.IsFlagged(id)
}

// BuildCheckedPool возвращает отмеченные вопросы выбранных предметов,
// упорядоченные по номеру. Пустой результат не является ошибкой.
func (s *ReviewService) BuildCheckedPool(subjects []string) []entity.Question {
	wanted := subjectSet(subjects)
	pool := make([]entity.Question, 0)
	for _, q := range s.bank.questions {
		if _, ok := wanted[q.Subject]; !ok {
			continue
		}
		if s.repo.IsFlagged(q.Identity()) {
			pool = append(pool, q)
		}
	}
	entity.SortByQuestionNumber(pool)
	return pool
}

// SetAnnotation сохраняет заметку; пустой текст удаляет ее
func (s *ReviewService) SetAnnotation(id entity.Identity, text string) error {
	if err := s.repo.SetAnnotation(id, text); err != nil {
		log.Printf("[ReviewService] Ошибка при сохранении заметки %s: %v", id.Key(), err)
		return err
	}
	return nil
}

// Annotation возвращает заметку к вопросу
func (s *ReviewService) Annotation(id entity.Identity) string {
	return s.repo.Annotation(id)
}

// ExportEntries возвращает по записи на каждый отмеченный вопрос
// с его заметкой, по раунду и номеру
func (s *ReviewService) ExportEntries() []entity.ExportEntry {
	flags := s.repo.Flags()
	notes := s.repo.Annotations()

	ids := make([]entity.Identity, 0, len(flags))
	for key := range flags {
		id, err := entity.ParseIdentityKey(key)
		if err != nil {
			log.Printf("[ReviewService] WARNING: пропускаем отметку с некорректным ключом: %v", err)
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

	entries := make([]entity.ExportEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, entity.ExportEntry{
			Round:          id.Round,
			QuestionNumber: id.QuestionNumber,
			Text:           notes[id.Key()],
		})
	}
	return entries
}
