package service

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/woogihooni/exmJo/internal/domain/entity"
)

func exportFixture(t *testing.T) *ExportService {
	t.Helper()
	review := newReviewService(sampleQuestions())
	require.NoError(t, review.SetFlag(entity.Identity{Round: "R1", QuestionNumber: 7}, true))
	require.NoError(t, review.SetFlag(entity.Identity{Round: "R1", QuestionNumber: 5}, true))
	require.NoError(t, review.SetAnnotation(entity.Identity{Round: "R1", QuestionNumber: 5}, `a, "b"`))
	require.NoError(t, review.SetAnnotation(entity.Identity{Round: "R1", QuestionNumber: 7}, "=SUM(A1)"))
	return NewExportService(review)
}

func TestFormatExportLine(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want string
	}{
		{"простой текст", "plain_text", "round: R1, number: 5, explanation: plain_text"},
		{"пустой текст", "", "round: R1, number: 5, explanation: "},
		{"запятая", "a, b", `round: R1, number: 5, explanation: "a, b"`},
		{"кавычки", `say "hi"`, `round: R1, number: 5, explanation: "say ""hi"""`},
		{"перевод строки", "line1\nline2", "round: R1, number: 5, explanation: \"line1\nline2\""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatExportLine(entity.ExportEntry{Round: "R1", QuestionNumber: 5, Text: tc.text})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExportService_Text(t *testing.T) {
	svc := exportFixture(t)
	var buf bytes.Buffer

	n, err := svc.Export("text", &buf)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t,
		"round: R1, number: 5, explanation: \"a, \"\"b\"\"\"\n"+
			"round: R1, number: 7, explanation: =SUM(A1)\n",
		buf.String())
}

func TestExportService_CSV(t *testing.T) {
	svc := exportFixture(t)
	var buf bytes.Buffer

	n, err := svc.Export("CSV", &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"round", "number", "explanation"},
		{"R1", "5", `a, "b"`},
		{"R1", "7", "'=SUM(A1)"},
	}, records, "Текст, похожий на формулу, экранируется")
}

func TestExportService_XLSX(t *testing.T) {
	svc := exportFixture(t)
	var buf bytes.Buffer

	n, err := svc.Export("xlsx", &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Notes")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"round", "number", "explanation"}, rows[0])
	assert.Equal(t, []string{"R1", "5", `a, "b"`}, rows[1])
	assert.Equal(t, []string{"R1", "7", "'=SUM(A1)"}, rows[2])
}

func TestExportService_UnknownFormat(t *testing.T) {
	svc := exportFixture(t)
	var buf bytes.Buffer

	_, err := svc.Export("pdf", &buf)

	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestSanitizeForExcel(t *testing.T) {
	assert.Equal(t, "", sanitizeForExcel(""))
	assert.Equal(t, "text", sanitizeForExcel("text"))
	assert.Equal(t, "'=1+1", sanitizeForExcel("=1+1"))
	assert.Equal(t, "'+7", sanitizeForExcel("+7"))
	assert.Equal(t, "'-7", sanitizeForExcel("-7"))
	assert.Equal(t, "'@cmd", sanitizeForExcel("@cmd"))
}
