package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/woogihooni/exmJo/internal/domain/entity"
)

func TestConvertOptionsToObjects(t *testing.T) {
	q := &entity.Question{
		Options: [entity.OptionSlots]*string{
			entity.StringPtr("first"), nil, entity.StringPtr(""), entity.StringPtr("fourth"),
		},
	}

	got := ConvertOptionsToObjects(q)

	assert.Equal(t, []QuestionOption{
		{ID: 1, Text: "first"},
		{ID: 3, Text: "(пустой вариант)"},
		{ID: 4, Text: "fourth"},
	}, got, "Пропущенный слот не отображается, номера сохраняются")
}

func TestConvertOptionsToObjects_NoOptions(t *testing.T) {
	assert.Empty(t, ConvertOptionsToObjects(&entity.Question{}))
}
