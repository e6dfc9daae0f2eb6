package exam

import (
	"testing"
)

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		key       string
		want      bool
	}{
		{"exact match", "A", "A", true},
		{"case-insensitive", "a", "A", true},
		{"key lowercase too", "A", "a", true},
		{"whitespace trimmed", " A ", "A", true},
		{"wrong letter", "B", "A", false},
		{"multi-select order matters", "DB", "BD", false},
		{"matching pairs as opaque string", "1a2b3c", "1A2B3C", true},
		{"missing answer against key", "", "A", false},
		{"essay free text", "fotosintesis", "FOTOSINTESIS", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCorrect(tt.submitted, tt.key); got != tt.want {
				t.Errorf("IsCorrect(%q, %q) = %v, want %v", tt.submitted, tt.key, got, tt.want)
			}
		})
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]string
		keys    map[string]string
		want    Summary
	}{
		{
			name:    "three of four correct rounds to 75",
			answers: map[string]string{"q1": "A", "q2": "B", "q3": "C", "q4": "E"},
			keys:    map[string]string{"q1": "A", "q2": "B", "q3": "C", "q4": "D"},
			want:    Summary{Correct: 3, Wrong: 1, Total: 4, Score: 75},
		},
		{
			name:    "all correct",
			answers: map[string]string{"q1": "a", "q2": "BD"},
			keys:    map[string]string{"q1": "A", "q2": "BD"},
			want:    Summary{Correct: 2, Wrong: 0, Total: 2, Score: 100},
		},
		{
			name:    "no questions scores zero without dividing",
			answers: map[string]string{},
			keys:    map[string]string{},
			want:    Summary{Correct: 0, Wrong: 0, Total: 0, Score: 0},
		},
		{
			name:    "unanswered questions count as wrong",
			answers: map[string]string{"q1": "A"},
			keys:    map[string]string{"q1": "A", "q2": "B", "q3": "C"},
			want:    Summary{Correct: 1, Wrong: 2, Total: 3, Score: 33},
		},
		{
			name:    "one of three rounds up to 33",
			answers: map[string]string{"q1": "A", "q2": "X", "q3": "X"},
			keys:    map[string]string{"q1": "A", "q2": "B", "q3": "C"},
			want:    Summary{Correct: 1, Wrong: 2, Total: 3, Score: 33},
		},
		{
			name:    "two of three rounds to 67",
			answers: map[string]string{"q1": "A", "q2": "B", "q3": "X"},
			keys:    map[string]string{"q1": "A", "q2": "B", "q3": "C"},
			want:    Summary{Correct: 2, Wrong: 1, Total: 3, Score: 67},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Grade(tt.answers, tt.keys); got != tt.want {
				t.Errorf("Grade() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
