package service

import (
	"fmt"
	"log"
	"sort"

	"github.com/woogihooni/exmJo/internal/domain/entity"
	"github.com/woogihooni/exmJo/internal/domain/repository"
)

// QuestionBank - загруженный один раз неизменяемый набор вопросов
// с индексами раундов и предметов
type QuestionBank struct {
	questions     []entity.Question
	byID          map[entity.Identity]int
	rounds        []string
	subjects      []string
	roundSubjects map[string][]string
}

// LoadQuestionBank загружает вопросы из репозитория и строит банк
func LoadQuestionBank(repo repository.QuestionRepository) (*QuestionBank, error) {
	questions, err := repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load question bank: %w", err)
	}
	return NewQuestionBank(questions), nil
}

// NewQuestionBank строит банк. Повторы (round, questionNumber) пропускаются,
// остается первая запись.
func NewQuestionBank(questions []entity.Question) *QuestionBank {
	b := &QuestionBank{
		questions:     make([]entity.Question, 0, len(questions)),
		byID:          make(map[entity.Identity]int, len(questions)),
		roundSubjects: make(map[string][]string),
	}

	roundSet := make(map[string]struct{})
	subjectSet := make(map[string]struct{})
	pairSet := make(map[string]map[string]struct{})

	for _, q := range questions {
		id := q.Identity()
		if _, dup := b.byID[id]; dup {
			log.Printf("[QuestionBank] WARNING: повтор вопроса %s пропущен", id.Key())
			continue
		}
		b.byID[id] = len(b.questions)
		b.questions = append(b.questions, q)

		if _, ok := roundSet[q.Round]; !ok {
			roundSet[q.Round] = struct{}{}
			b.rounds = append(b.rounds, q.Round)
		}
		if _, ok := subjectSet[q.Subject]; !ok {
			subjectSet[q.Subject] = struct{}{}
			b.subjects = append(b.subjects, q.Subject)
		}
		if pairSet[q.Round] == nil {
			pairSet[q.Round] = make(map[string]struct{})
		}
		if _, ok := pairSet[q.Round][q.Subject]; !ok {
			pairSet[q.Round][q.Subject] = struct{}{}
			b.roundSubjects[q.Round] = append(b.roundSubjects[q.Round], q.Subject)
		}
	}

	sort.Strings(b.rounds)
	sort.Strings(b.subjects)
	for round := range b.roundSubjects {
		sort.Strings(b.roundSubjects[round])
	}

	log.Printf("[QuestionBank] Банк готов: %d вопросов, %d раундов, %d предметов",
		len(b.questions), len(b.rounds), len(b.subjects))
	return b
}

// Len возвращает количество вопросов
func (b *QuestionBank) Len() int { return len(b.questions) }

// Rounds возвращает раунды по возрастанию
func (b *QuestionBank) Rounds() []string {
	return append([]string(nil), b.rounds...)
}

// Subjects возвращает все предметы по возрастанию
func (b *QuestionBank) Subjects() []string {
	return append([]string(nil), b.subjects...)
}

// SubjectsForRound возвращает предметы, встречающиеся в раунде
func (b *QuestionBank) SubjectsForRound(round string) []string {
	return append([]string(nil), b.roundSubjects[round]...)
}

// Questions возвращает копию всех вопросов в порядке загрузки
func (b *QuestionBank) Questions() []entity.Question {
	return append([]entity.Question(nil), b.questions...)
}

// Lookup ищет вопрос по идентификатору
func (b *QuestionBank) Lookup(id entity.Identity) (entity.Question, bool) {
	idx, ok := b.byID[id]
	if !ok {
		return entity.Question{}, false
	}
	return b.questions[idx], true
}

// FilterPool собирает пул раунда по выбранным предметам, упорядоченный по номеру вопроса
func (b *QuestionBank) FilterPool(round string, subjects []string) []entity.Question {
	wanted := subjectSet(subjects)
	pool := make([]entity.Question, 0)
	for _, q := range b.questions {
		if q.Round != round {
			continue
		}
		if _, ok := wanted[q.Subject]; !ok {
			continue
		}
		pool = append(pool, q)
	}
	entity.SortByQuestionNumber(pool)
	return pool
}

// NextRound возвращает ближайший раунд строго после round
func (b *QuestionBank) NextRound(round string) (string, bool) {
	idx := sort.SearchStrings(b.rounds, round)
	for idx < len(b.rounds) && b.rounds[idx] == round {
		idx++
	}
	if idx >= len(b.rounds) {
		return "", false
	}
	return b.rounds[idx], true
}

func subjectSet(subjects []string) map[string]struct{} {
	set := make(map[string]struct{}, len(subjects))
	for _, s := range subjects {
		set[s] = struct{}{}
	}
	return set
}
