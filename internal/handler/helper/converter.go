package helper

import (
	"github.com/woogihooni/exmJo/internal/domain/entity"
)

// QuestionOption - вариант ответа для отображения
type QuestionOption struct {
	ID   int    `json:"id"` // 1-based, как в банке
	Text string `json:"text"`
}

// ConvertOptionsToObjects возвращает только заполненные слоты вопроса.
// ID сохраняет исходный номер слота, поэтому пропуски в нумерации возможны.
func ConvertOptionsToObjects(q *entity.Question) []QuestionOption {
	converted := make([]QuestionOption, 0, entity.OptionSlots)
	for i := 1; i <= entity.OptionSlots; i++ {
		text, ok := q.Option(i)
		if !ok {
			continue
		}
		if text == "" {
			text = "(пустой вариант)"
		}
		converted = append(converted, QuestionOption{ID: i, Text: text})
	}
	return converted
}
