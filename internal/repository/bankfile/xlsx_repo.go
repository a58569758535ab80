package bankfile

import (
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/woogihooni/exmJo/internal/domain/entity"
)

// XLSXQuestionRepo загружает банк вопросов из листа Excel.
// Первая строка листа - заголовки с именами полей.
type XLSXQuestionRepo struct {
	path  string
	sheet string
}

// NewXLSXQuestionRepo создает репозиторий; пустой sheet означает первый лист
func NewXLSXQuestionRepo(path, sheet string) *XLSXQuestionRepo {
	return &XLSXQuestionRepo{path: path, sheet: sheet}
}

// LoadAll читает все строки листа
func (r *XLSXQuestionRepo) LoadAll() ([]entity.Question, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question bank '%s': %w", r.path, err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("question bank '%s' has no sheets", r.path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of '%s': %w", sheet, r.path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q of '%s' is empty", sheet, r.path)
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	questions := make([]entity.Question, 0, len(rows)-1)
	for i, row := range rows[1:] {
		fields := make(map[string]interface{}, len(header))
		for col, cell := range row {
			if col >= len(header) || header[col] == "" || cell == "" {
				continue
			}
			fields[header[col]] = cell
		}
		if len(fields) == 0 {
			continue
		}

		q, err := mapRecord(i+2, fields)
		if err != nil {
			return nil, fmt.Errorf("question bank '%s' (row numbers are 1-based): %w", r.path, err)
		}
		questions = append(questions, q)
	}

	log.Printf("[QuestionRepo] Загружено %d вопросов из %s (лист %s)", len(questions), r.path, sheet)
	return questions, nil
}
