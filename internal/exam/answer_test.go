package exam

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "ab12", "AB12"},
		{"surrounding spaces", "  ab12 ", "AB12"},
		{"already normalized", "AB12", "AB12"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToggleChoice(t *testing.T) {
	tests := []struct {
		name    string
		current string
		letter  string
		want    string
	}{
		{"append to empty", "", "B", "B"},
		{"append second", "B", "D", "BD"},
		{"remove first occurrence", "BD", "B", "D"},
		{"remove middle", "ABC", "B", "AC"},
		{"remove last", "ABC", "C", "AB"},
		{"empty letter is a no-op", "AB", "", "AB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToggleChoice(tt.current, tt.letter); got != tt.want {
				t.Errorf("ToggleChoice(%q, %q) = %q, want %q", tt.current, tt.letter, got, tt.want)
			}
		})
	}
}

// Toggling the same letter twice must restore the intermediate state,
// leaving only the letters toggled an odd number of times.
func TestToggleChoiceSequence(t *testing.T) {
	got := ""
	for _, letter := range []string{"B", "D", "B"} {
		got = ToggleChoice(got, letter)
	}
	if got != "D" {
		t.Errorf("toggle B,D,B = %q, want %q", got, "D")
	}
}

func TestSetStatement(t *testing.T) {
	tests := []struct {
		name    string
		current string
		slot    int
		code    rune
		want    string
	}{
		{"first slot", "", 1, 'B', "B"},
		{"pads unanswered slots", "", 3, 'S', "--S"},
		{"overwrites slot", "BS", 2, 'B', "BB"},
		{"extends past current length", "B", 4, 'S', "B--S"},
		{"slot zero is a no-op", "BS", 0, 'B', "BS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SetStatement(tt.current, tt.slot, tt.code); got != tt.want {
				t.Errorf("SetStatement(%q, %d, %q) = %q, want %q", tt.current, tt.slot, tt.code, got, tt.want)
			}
		})
	}
}
