package service

import (
	"encoding/json"
	"testing"

	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/garudacbt/cbt-backend/internal/spreadsheet"
	"github.com/google/uuid"
)

func TestQuestionFromRecordChoice(t *testing.T) {
	subjectID := uuid.New()
	rec := spreadsheet.Record{
		"no_soal":       "3",
		"type_soal":     "pg",
		"pertanyaan":    "Ibukota Indonesia?",
		"pilihan_a":     "Jakarta",
		"pilihan_b":     "Bandung",
		"pilihan_c":     "Surabaya",
		"kunci_jawaban": "a",
	}

	req, err := questionFromRecord(subjectID, rec)
	if err != nil {
		t.Fatalf("questionFromRecord: %v", err)
	}
	if req.Number != 3 || req.Type != model.QuestionTypePG {
		t.Errorf("number/type = %d/%s, want 3/PG", req.Number, req.Type)
	}

	var p model.ChoicePayload
	if err := json.Unmarshal(req.Payload, &p); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(p.Options) != 3 {
		t.Fatalf("got %d options, want 3", len(p.Options))
	}
	if p.Options[0].Label != "A" || p.Options[0].Text != "Jakarta" {
		t.Errorf("option 0 = %+v, want A/Jakarta", p.Options[0])
	}
}

func TestQuestionFromRecordStatements(t *testing.T) {
	rec := spreadsheet.Record{
		"no_soal":       "1",
		"type_soal":     "BS",
		"pertanyaan":    "Tentukan benar atau salah.",
		"pernyataan_1":  "Air mendidih pada 100 derajat.",
		"pernyataan_2":  "Es lebih berat dari air.",
		"kunci_jawaban": "BS",
	}

	req, err := questionFromRecord(uuid.New(), rec)
	if err != nil {
		t.Fatalf("questionFromRecord: %v", err)
	}

	var p model.StatementPayload
	if err := json.Unmarshal(req.Payload, &p); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(p.Statements) != 2 {
		t.Errorf("got %d statements, want 2", len(p.Statements))
	}
}

func TestQuestionFromRecordRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		rec  spreadsheet.Record
	}{
		{"missing number", spreadsheet.Record{"type_soal": "PG"}},
		{"unknown type", spreadsheet.Record{"no_soal": "1", "type_soal": "XX"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := questionFromRecord(uuid.New(), tt.rec); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestQuestionToRecordFlattensMatching(t *testing.T) {
	payload, _ := json.Marshal(model.MatchingPayload{
		Left:  []string{"Jantung", "Paru-paru"},
		Right: []string{"Memompa darah", "Pernapasan"},
	})
	q := &model.Question{
		Number:    7,
		Type:      model.QuestionTypeMJ,
		Text:      "Jodohkan organ dengan fungsinya.",
		Payload:   payload,
		AnswerKey: "1A2B",
	}

	rec, err := questionToRecord(q)
	if err != nil {
		t.Fatalf("questionToRecord: %v", err)
	}
	if rec["pasangan_kiri_2"] != "Paru-paru" {
		t.Errorf("pasangan_kiri_2 = %q, want Paru-paru", rec["pasangan_kiri_2"])
	}
	if rec["pasangan_kanan_1"] != "Memompa darah" {
		t.Errorf("pasangan_kanan_1 = %q", rec["pasangan_kanan_1"])
	}
	if _, ok := rec["id"]; ok {
		t.Error("internal id must not be exported")
	}
}
