// Package exam contains the pure answer-encoding and grading rules.
// Everything here is stateless string manipulation; persistence and
// transport live elsewhere.
package exam

import (
	"strings"
)

// StatementPlaceholder fills statement slots the participant has not
// answered yet, so later slots keep their position in the encoding.
const StatementPlaceholder = '-'

// Normalize trims surrounding whitespace and uppercases a raw value.
// Both submitted answers and stored keys pass through this before any
// comparison.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ToggleChoice flips one option letter in a multiple-select answer.
// If the letter is already present its first occurrence is removed,
// otherwise the letter is appended. Order of the remaining letters is
// preserved, so toggling B then D then B yields "D".
func ToggleChoice(current, letter string) string {
	if letter == "" {
		return current
	}
	if idx := strings.Index(current, letter); idx >= 0 {
		return current[:idx] + current[idx+len(letter):]
	}
	return current + letter
}

// SetStatement writes a per-statement code (such as "B"/"S" or "S"/"T")
// into the 1-based slot of a positional answer string. Earlier slots
// that were never answered are padded with StatementPlaceholder so the
// encoding stays positional.
func SetStatement(current string, slot int, code rune) string {
	if slot < 1 {
		return current
	}
	runes := []rune(current)
	for len(runes) < slot {
		runes = append(runes, StatementPlaceholder)
	}
	runes[slot-1] = code
	return string(runes)
}
