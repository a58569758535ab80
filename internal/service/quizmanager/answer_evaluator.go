package quizmanager

import (
	"strconv"
	"strings"
)

// circledDigits - обозначения вариантов, встречающиеся в банке вместо цифр
var circledDigits = map[string]int{
	"①": 1,
	"②": 2,
	"③": 3,
	"④": 4,
}

// NormalizeAnswer приводит сохраненное в банке значение правильного ответа
// к номеру варианта 1..4. Второе значение false означает, что правильный
// вариант определить нельзя: такой вопрос засчитывается как неверный.
//
// Принимаются только строки: "①".."④" и числа с возможным хвостом ("3", "2번").
func NormalizeAnswer(raw interface{}) (int, bool) {
	s, ok := raw.(string)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if idx, ok := circledDigits[s]; ok {
		return idx, true
	}

	n, ok := leadingInt(s)
	if !ok || n < 1 || n > 4 {
		return 0, false
	}
	return n, true
}

// leadingInt разбирает целое в начале строки, остаток игнорируется
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
