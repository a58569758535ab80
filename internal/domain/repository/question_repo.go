package repository

import (
	"github.com/woogihooni/exmJo/internal/domain/entity"
)

// QuestionRepository загружает банк вопросов целиком.
// Источник (файл, таблица, БД) для сессии значения не имеет.
type QuestionRepository interface {
	LoadAll() ([]entity.Question, error)
}
