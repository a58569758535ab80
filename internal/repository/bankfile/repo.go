// Package bankfile загружает банк вопросов из файлов JSON и XLSX.
package bankfile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/woogihooni/exmJo/internal/domain/repository"
)

// NewQuestionRepository выбирает загрузчик по расширению файла
func NewQuestionRepository(path, sheet string) (repository.QuestionRepository, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONQuestionRepo(path), nil
	case ".xlsx":
		return NewXLSXQuestionRepo(path, sheet), nil
	default:
		return nil, fmt.Errorf("unsupported question bank format: %q", path)
	}
}
