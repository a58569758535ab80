package bankfile

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/woogihooni/exmJo/internal/domain/entity"
)

// JSONQuestionRepo загружает банк вопросов из JSON-массива записей
type JSONQuestionRepo struct {
	path string
}

// NewJSONQuestionRepo создает репозиторий для файла path
func NewJSONQuestionRepo(path string) *JSONQuestionRepo {
	return &JSONQuestionRepo{path: path}
}

// LoadAll читает и разбирает весь файл
func (r *JSONQuestionRepo) LoadAll() ([]entity.Question, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question bank '%s': %w", r.path, err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber()

	var records []map[string]interface{}
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse question bank '%s': %w", r.path, err)
	}

	questions := make([]entity.Question, 0, len(records))
	for i, fields := range records {
		q, err := mapRecord(i, fields)
		if err != nil {
			return nil, fmt.Errorf("question bank '%s': %w", r.path, err)
		}
		questions = append(questions, q)
	}

	log.Printf("[QuestionRepo] Загружено %d вопросов из %s", len(questions), r.path)
	return questions, nil
}
