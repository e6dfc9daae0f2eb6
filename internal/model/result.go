package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamResult is the write-once outcome of one finished session.
// Participant and subject names are denormalized so results stay
// readable after the source records change or disappear.
type ExamResult struct {
	ID              uuid.UUID         `json:"id"`
	SessionID       uuid.UUID         `json:"session_id"`
	ParticipantID   uuid.UUID         `json:"peserta_id"`
	ParticipantName string            `json:"peserta_nama"`
	AgendaID        uuid.UUID         `json:"agenda_id"`
	SubjectID       uuid.UUID         `json:"mapel_id"`
	SubjectName     string            `json:"mapel_nama"`
	Answers         map[string]string `json:"jawaban"`
	Correct         int               `json:"benar"`
	Wrong           int               `json:"salah"`
	Score           int               `json:"skor"`
	FinishedAt      time.Time         `json:"waktu_selesai"`
}

// ResultFilter narrows admin result listings.
type ResultFilter struct {
	AgendaID      *uuid.UUID
	SubjectID     *uuid.UUID
	ParticipantID *uuid.UUID
}
