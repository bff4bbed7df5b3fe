// Package answer holds the pure question-classification and
// answer-extraction logic. Everything here is a function of its
// input: no I/O, no shared state, safe under concurrent requests.
package answer

import (
	"regexp"
	"strconv"
	"strings"
)

// tokenPattern matches the first standalone answer token: the literal
// "null", the two-digit "10", or a single digit. "10" is listed before
// \d so "10" is not consumed as "1". The explicit letter/digit classes
// stand in for \b, which is ASCII-only in Go and would treat Cyrillic
// letters as separators, letting digits glued to a Russian word
// ("Вариант7") match as standalone tokens.
//
// The prompt asks for 1-10 but the pattern also accepts 0; the upstream
// behavior is kept as is.
var tokenPattern = regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])(null|10|\d)(?:[^\p{L}\p{N}_]|$)`)

// Extract parses raw model output into a discrete answer.
// It returns nil when the first matching token is "null" or when no
// token matches at all. Otherwise it returns the matched integer,
// always within [0, 10].
func Extract(text string) *int {
	m := tokenPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	token := m[1]
	if strings.EqualFold(token, "null") {
		return nil
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return nil
	}
	return &n
}
