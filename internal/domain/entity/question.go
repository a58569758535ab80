package entity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// OptionSlots - максимальное количество вариантов ответа у вопроса
const OptionSlots = 4

// Identity однозначно определяет вопрос в банке: раунд + номер вопроса.
// Номер уникален только внутри раунда.
type Identity struct {
	Round          string `json:"round"`
	QuestionNumber int    `json:"question_number"`
}

// Key возвращает ключ вида "{round}-{questionNumber}",
// под которым хранятся флаги и заметки
func (id Identity) Key() string {
	return fmt.Sprintf("%s-%d", id.Round, id.QuestionNumber)
}

// Less задает порядок: раунд лексикографически, затем номер по возрастанию
func (id Identity) Less(other Identity) bool {
	if id.Round != other.Round {
		return id.Round < other.Round
	}
	return id.QuestionNumber < other.QuestionNumber
}

// ParseIdentityKey разбирает ключ, созданный Identity.Key.
// Раунд может сам содержать '-', поэтому делим по последнему дефису.
func ParseIdentityKey(key string) (Identity, error) {
	idx := strings.LastIndex(key, "-")
	if idx <= 0 || idx == len(key)-1 {
		return Identity{}, fmt.Errorf("malformed question key %q", key)
	}
	number, err := strconv.Atoi(key[idx+1:])
	if err != nil || number <= 0 {
		return Identity{}, fmt.Errorf("malformed question number in key %q", key)
	}
	return Identity{Round: key[:idx], QuestionNumber: number}, nil
}

// Question представляет неизменяемую запись банка вопросов.
// Состояние ответа (answered/isCorrect) хранится не здесь, а в сессии.
type Question struct {
	Round          string  `json:"round"`
	Subject        string  `json:"subject"`
	QuestionNumber int     `json:"question_number"`
	Body           string  `json:"body"`
	Exhibit        *string `json:"exhibit,omitempty"`
	// Options - слоты вариантов 1..4, nil означает отсутствующий вариант
	Options [OptionSlots]*string `json:"options"`
	// CorrectAnswer - сырое значение из банка ("3", "③" и т.п.), нормализуется при проверке
	CorrectAnswer interface{} `json:"correct_answer"`
	Explanation   *string     `json:"explanation,omitempty"`
}

// Identity возвращает идентификатор вопроса
func (q *Question) Identity() Identity {
	return Identity{Round: q.Round, QuestionNumber: q.QuestionNumber}
}

// Option возвращает текст варианта по номеру 1..4
func (q *Question) Option(index int) (string, bool) {
	if index < 1 || index > OptionSlots {
		return "", false
	}
	opt := q.Options[index-1]
	if opt == nil {
		return "", false
	}
	return *opt, true
}

// OptionsCount возвращает количество заполненных вариантов ответа
func (q *Question) OptionsCount() int {
	count := 0
	for _, opt := range q.Options {
		if opt != nil {
			count++
		}
	}
	return count
}

// IsValidOption проверяет, что вариант с таким номером существует
func (q *Question) IsValidOption(index int) bool {
	_, ok := q.Option(index)
	return ok
}

// HasExhibit сообщает, есть ли у вопроса дополнительный материал
func (q *Question) HasExhibit() bool {
	return q.Exhibit != nil
}

// HasExplanation сообщает, есть ли у вопроса пояснение
func (q *Question) HasExplanation() bool {
	return q.Explanation != nil
}

// SortByQuestionNumber стабильно сортирует пул по номеру вопроса.
// Порядок вопросов с одинаковым номером (из разных раундов) сохраняется.
func SortByQuestionNumber(pool []Question) {
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].QuestionNumber < pool[j].QuestionNumber
	})
}

// DistinctSubjects возвращает отсортированный список предметов пула
func DistinctSubjects(pool []Question) []string {
	seen := make(map[string]struct{}, len(pool))
	subjects := make([]string, 0)
	for _, q := range pool {
		if _, ok := seen[q.Subject]; ok {
			continue
		}
		seen[q.Subject] = struct{}{}
		subjects = append(subjects, q.Subject)
	}
	sort.Strings(subjects)
	return subjects
}

// StringPtr - вспомогательная функция для опциональных полей
func StringPtr(s string) *string { return &s }
