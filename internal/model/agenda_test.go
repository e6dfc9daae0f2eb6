package model

import (
	"testing"
	"time"
)

func TestAgendaIsActiveAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	agenda := &Agenda{StartsAt: start, EndsAt: end}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before window", start.Add(-time.Second), false},
		{"exactly at start", start, true},
		{"inside window", start.Add(time.Hour), true},
		{"exactly at end", end, true},
		{"after window", end.Add(time.Second), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := agenda.IsActiveAt(tt.now); got != tt.want {
				t.Errorf("IsActiveAt(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestAgendaMatchToken(t *testing.T) {
	agenda := &Agenda{Token: "AB12"}

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"exact", "AB12", true},
		{"lowercase input", "ab12", true},
		{"surrounding spaces", " ab12 ", true},
		{"wrong token", "XY99", false},
		{"empty input", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := agenda.MatchToken(tt.input); got != tt.want {
				t.Errorf("MatchToken(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	t.Run("agenda without token never matches", func(t *testing.T) {
		empty := &Agenda{}
		if empty.MatchToken("") {
			t.Error("MatchToken on empty stored token must be false")
		}
	})
}
