package service

import (
	"errors"
	"testing"

	"github.com/garudacbt/cbt-backend/internal/model"
)

func TestEncodeAnswer(t *testing.T) {
	tests := []struct {
		name    string
		qType   model.QuestionType
		current string
		value   string
		slot    int
		want    string
		wantErr bool
	}{
		{name: "pg replaces", qType: model.QuestionTypePG, current: "A", value: "c", want: "C"},
		{name: "pg rejects multi-letter", qType: model.QuestionTypePG, value: "AB", wantErr: true},
		{name: "pg rejects out of range", qType: model.QuestionTypePG, value: "F", wantErr: true},
		{name: "pk toggles on", qType: model.QuestionTypePK, current: "B", value: "d", want: "BD"},
		{name: "pk toggles off", qType: model.QuestionTypePK, current: "BD", value: "B", want: "D"},
		{name: "bs writes slot", qType: model.QuestionTypeBS, current: "", value: "s", slot: 3, want: "--S"},
		{name: "bs rejects other codes", qType: model.QuestionTypeBS, value: "T", slot: 1, wantErr: true},
		{name: "st writes slot", qType: model.QuestionTypeST, current: "S", value: "t", slot: 2, want: "ST"},
		{name: "st rejects slot zero", qType: model.QuestionTypeST, value: "S", slot: 0, wantErr: true},
		{name: "mj uppercases opaque value", qType: model.QuestionTypeMJ, value: "1a2b", want: "1A2B"},
		{name: "ur keeps raw text", qType: model.QuestionTypeUR, value: "Jawaban saya", want: "Jawaban saya"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeAnswer(tt.qType, tt.current, tt.value, tt.slot)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAnswer) {
					t.Fatalf("err = %v, want ErrInvalidAnswer", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("encodeAnswer() = %q, want %q", got, tt.want)
			}
		})
	}
}
