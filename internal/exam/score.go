package exam

import (
	"math"
)

// Summary is the outcome of grading one finished session.
type Summary struct {
	Correct int `json:"benar"`
	Wrong   int `json:"salah"`
	Total   int `json:"total"`
	Score   int `json:"skor"`
}

// IsCorrect reports whether a submitted answer matches the stored key.
// Comparison is strict full-string equality after normalizing both
// sides: no partial credit, and multi-select letter order matters.
func IsCorrect(submitted, key string) bool {
	return Normalize(submitted) == Normalize(key)
}

// Grade scores a full answer sheet against the answer keys. Keys is the
// authoritative question set: a question with no submitted answer counts
// as wrong (unless its key is also empty). The score is the percentage
// of correct answers rounded to the nearest integer; an empty key set
// scores zero.
func Grade(answers, keys map[string]string) Summary {
	s := Summary{Total: len(keys)}
	for questionID, key := range keys {
		if IsCorrect(answers[questionID], key) {
			s.Correct++
		} else {
			s.Wrong++
		}
	}
	if s.Total > 0 {
		s.Score = int(math.Round(100 * float64(s.Correct) / float64(s.Total)))
	}
	return s
}
