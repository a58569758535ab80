package bankfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestJSONQuestionRepo_KoreanKeys(t *testing.T) {
	// Arrange: формат исходного quiz_data.json
	path := writeFile(t, "quiz_data.json", `[
		{"연월일": "20210515", "과목": "수학", "문제번호": 3, "문제내용": "1+1=?",
		 "보기": null, "선택지1": "1", "선택지2": "2", "선택지3": null, "선택지4": "4",
		 "정답": "②", "해설": "기초 산수"},
		{"연월일": 20210515, "과목": "과학", "문제번호": "4", "문제내용": "H2O?",
		 "선택지1": "물", "선택지2": "불", "정답": 1}
	]`)

	// Act
	questions, err := NewJSONQuestionRepo(path).LoadAll()

	// Assert
	require.NoError(t, err)
	require.Len(t, questions, 2)

	first := questions[0]
	assert.Equal(t, "20210515", first.Round)
	assert.Equal(t, "수학", first.Subject)
	assert.Equal(t, 3, first.QuestionNumber)
	assert.False(t, first.HasExhibit(), "null означает отсутствие материала")
	assert.Equal(t, 3, first.OptionsCount(), "Пропущенный третий слот допустим")
	assert.Equal(t, "②", first.CorrectAnswer)
	require.NotNil(t, first.Explanation)
	assert.Equal(t, "기초 산수", *first.Explanation)

	second := questions[1]
	assert.Equal(t, "20210515", second.Round, "Числовой раунд приводится к строке")
	assert.Equal(t, 4, second.QuestionNumber, "Номер-строка разбирается")
	assert.Equal(t, json.Number("1"), second.CorrectAnswer, "Нестроковый ответ сохраняется как есть")
	assert.False(t, second.HasExplanation())
}

func TestJSONQuestionRepo_EnglishKeys(t *testing.T) {
	path := writeFile(t, "bank.json", `[
		{"round": "R1", "subject": "Math", "question_number": 5, "body": "2*2?",
		 "exhibit": "table", "option1": "4", "option2": "5", "answer": "1", "explanation": ""}
	]`)

	questions, err := NewJSONQuestionRepo(path).LoadAll()

	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "2*2?", questions[0].Body)
	require.NotNil(t, questions[0].Exhibit)
	assert.Equal(t, "table", *questions[0].Exhibit)
	assert.Nil(t, questions[0].Explanation, "Пустое пояснение считается отсутствующим")
}

func TestJSONQuestionRepo_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"не JSON", `{{{`},
		{"объект вместо массива", `{"round": "R1"}`},
		{"нет раунда", `[{"subject": "Math", "question_number": 1}]`},
		{"нет предмета", `[{"round": "R1", "question_number": 1}]`},
		{"нет номера", `[{"round": "R1", "subject": "Math"}]`},
		{"нулевой номер", `[{"round": "R1", "subject": "Math", "question_number": 0}]`},
		{"дробный номер", `[{"round": "R1", "subject": "Math", "question_number": 1.5}]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "bank.json", tc.content)
			_, err := NewJSONQuestionRepo(path).LoadAll()
			assert.Error(t, err)
		})
	}
}

func TestJSONQuestionRepo_MissingFile(t *testing.T) {
	_, err := NewJSONQuestionRepo(filepath.Join(t.TempDir(), "none.json")).LoadAll()
	assert.Error(t, err)
}

func TestXLSXQuestionRepo_LoadAll(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "bank.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"연월일", "과목", "문제번호", "문제내용", "선택지1", "선택지2", "선택지3", "선택지4", "정답", "해설"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"20210515", "Math", "2", "Q2", "a", "b", "", "d", "④", "why"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{"20210515", "Science", "1", "Q1", "x", "y"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	// Act
	questions, err := NewXLSXQuestionRepo(path, "").LoadAll()

	// Assert: пустая строка 3 пропускается
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 2, questions[0].QuestionNumber)
	assert.Equal(t, 3, questions[0].OptionsCount())
	assert.Equal(t, "④", questions[0].CorrectAnswer)
	assert.Equal(t, "Science", questions[1].Subject)
	assert.Nil(t, questions[1].CorrectAnswer, "Нет ответа - нет значения")
}

func TestXLSXQuestionRepo_UnknownSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := NewXLSXQuestionRepo(path, "Nope").LoadAll()
	assert.Error(t, err)
}

func TestNewQuestionRepository(t *testing.T) {
	repo, err := NewQuestionRepository("a/b/quiz.JSON", "")
	require.NoError(t, err)
	assert.IsType(t, &JSONQuestionRepo{}, repo)

	repo, err = NewQuestionRepository("bank.xlsx", "S")
	require.NoError(t, err)
	assert.IsType(t, &XLSXQuestionRepo{}, repo)

	_, err = NewQuestionRepository("bank.csv", "")
	assert.Error(t, err)
}
