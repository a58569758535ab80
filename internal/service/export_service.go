package service

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/woogihooni/exmJo/internal/config"
	"github.com/woogihooni/exmJo/internal/domain/entity"
)

// ExportService выгружает заметки по отмеченным вопросам
type ExportService struct {
	review *ReviewService
}

// NewExportService создает сервис экспорта
func NewExportService(review *ReviewService) *ExportService {
	return &ExportService{review: review}
}

// Export пишет выгрузку в формате format (text, csv, xlsx) и возвращает число записей
func (s *ExportService) Export(format string, w io.Writer) (int, error) {
	entries := s.review.ExportEntries()

	var err error
	switch strings.ToLower(format) {
	case config.ExportFormatText, "":
		err = writeTextExport(w, entries)
	case config.ExportFormatCSV:
		err = writeCSVExport(w, entries)
	case config.ExportFormatXLSX:
		err = writeXLSXExport(w, entries)
	default:
		return 0, fmt.Errorf("unsupported export format: %q", format)
	}
	if err != nil {
		return 0, err
	}

	log.Printf("[ExportService] Выгружено %d записей в формате %s", len(entries), format)
	return len(entries), nil
}

// FormatExportLine формирует строку "round: R, number: N, explanation: TEXT".
// Текст с запятыми, кавычками или переводами строк заключается в кавычки,
// кавычки внутри удваиваются.
func FormatExportLine(e entity.ExportEntry) string {
	return fmt.Sprintf("round: %s, number: %d, explanation: %s", e.Round, e.QuestionNumber, quoteField(e.Text))
}

func quoteField(s string) string {
	if !strings.ContainsAny(s, ",\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func writeTextExport(w io.Writer, entries []entity.ExportEntry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := bw.WriteString(FormatExportLine(e) + "\n"); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	}
	return bw.Flush()
}

func writeCSVExport(w io.Writer, entries []entity.ExportEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"round", "number", "explanation"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, e := range entries {
		if err := writer.Write([]string{
			sanitizeForExcel(e.Round),
			strconv.Itoa(e.QuestionNumber),
			sanitizeForExcel(e.Text),
		}); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// writeXLSXExport пишет книгу через StreamWriter
func writeXLSXExport(w io.Writer, entries []entity.ExportEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Notes"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	if err := sw.SetRow("A1", []interface{}{"round", "number", "explanation"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, e := range entries {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{sanitizeForExcel(e.Round), e.QuestionNumber, sanitizeForExcel(e.Text)}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
