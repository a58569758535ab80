package bankfile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/woogihooni/exmJo/internal/domain/entity"
)

// Допустимые имена колонок: английские и исходные корейские
var fieldAliases = map[string][]string{
	"round":           {"round", "연월일"},
	"subject":         {"subject", "과목"},
	"question_number": {"question_number", "문제번호"},
	"body":            {"body", "문제내용"},
	"exhibit":         {"exhibit", "보기"},
	"option1":         {"option1", "선택지1"},
	"option2":         {"option2", "선택지2"},
	"option3":         {"option3", "선택지3"},
	"option4":         {"option4", "선택지4"},
	"answer":          {"answer", "정답"},
	"explanation":     {"explanation", "해설"},
}

func lookup(fields map[string]interface{}, name string) (interface{}, bool) {
	for _, alias := range fieldAliases[name] {
		if v, ok := fields[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// textValue приводит строку или число к тексту
func textValue(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return "", false
	}
}

// optionalText возвращает nil для отсутствующих и пустых значений
func optionalText(fields map[string]interface{}, name string) *string {
	v, ok := lookup(fields, name)
	if !ok {
		return nil
	}
	text, ok := textValue(v)
	if !ok || strings.TrimSpace(text) == "" {
		return nil
	}
	return &text
}

func questionNumber(v interface{}) (int, error) {
	var n int64
	var err error
	switch val := v.(type) {
	case json.Number:
		n, err = val.Int64()
	case string:
		n, err = strconv.ParseInt(strings.TrimSpace(val), 10, 64)
	case float64:
		n = int64(val)
		if float64(n) != val {
			err = fmt.Errorf("not an integer: %v", val)
		}
	default:
		err = fmt.Errorf("unsupported type %T", v)
	}
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return int(n), nil
}

// mapRecord превращает запись источника в вопрос. index используется в сообщениях об ошибках.
func mapRecord(index int, fields map[string]interface{}) (entity.Question, error) {
	var q entity.Question

	rawRound, ok := lookup(fields, "round")
	if !ok {
		return q, fmt.Errorf("record %d: round is missing", index)
	}
	round, ok := textValue(rawRound)
	if !ok || strings.TrimSpace(round) == "" {
		return q, fmt.Errorf("record %d: round is empty or malformed", index)
	}
	q.Round = strings.TrimSpace(round)

	rawSubject, ok := lookup(fields, "subject")
	if !ok {
		return q, fmt.Errorf("record %d: subject is missing", index)
	}
	subject, ok := textValue(rawSubject)
	if !ok || strings.TrimSpace(subject) == "" {
		return q, fmt.Errorf("record %d: subject is empty or malformed", index)
	}
	q.Subject = strings.TrimSpace(subject)

	rawNumber, ok := lookup(fields, "question_number")
	if !ok {
		return q, fmt.Errorf("record %d: question number is missing", index)
	}
	number, err := questionNumber(rawNumber)
	if err != nil {
		return q, fmt.Errorf("record %d: invalid question number: %w", index, err)
	}
	q.QuestionNumber = number

	if rawBody, ok := lookup(fields, "body"); ok {
		q.Body, _ = textValue(rawBody)
	}
	q.Exhibit = optionalText(fields, "exhibit")
	for i := 0; i < entity.OptionSlots; i++ {
		q.Options[i] = optionalText(fields, fmt.Sprintf("option%d", i+1))
	}
	// Ответ сохраняется как есть, нормализация - дело проверяющего
	if rawAnswer, ok := lookup(fields, "answer"); ok {
		q.CorrectAnswer = rawAnswer
	}
	q.Explanation = optionalText(fields, "explanation")

	return q, nil
}
