package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/garudacbt/cbt-backend/internal/exam"
)

// Agenda represents a scheduled exam event (agenda ujian) participants
// join with a token.
type Agenda struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"agenda_ujian"`
	Description string    `json:"deskripsi_ujian"`
	Kind        string    `json:"jenis_tes"`
	Token       string    `json:"token_ujian,omitempty"`
	StartsAt    time.Time `json:"tgljam_mulai"`
	EndsAt      time.Time `json:"tgljam_selesai"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsActiveAt reports whether the agenda window covers the given instant.
// Both boundaries are inclusive.
func (a *Agenda) IsActiveAt(now time.Time) bool {
	return !now.Before(a.StartsAt) && !now.After(a.EndsAt)
}

// MatchToken checks a participant-supplied token against the stored one.
// The input is trimmed and uppercased before comparison; the stored
// token is kept uppercase at write time.
func (a *Agenda) MatchToken(input string) bool {
	return a.Token != "" && exam.Normalize(input) == a.Token
}

// CreateAgendaRequest is the admin payload for creating an agenda.
// Token is generated server-side when omitted.
type CreateAgendaRequest struct {
	Name        string    `json:"agenda_ujian" binding:"required,min=2,max=150"`
	Description string    `json:"deskripsi_ujian" binding:"omitempty,max=500"`
	Kind        string    `json:"jenis_tes" binding:"required,max=50"`
	Token       string    `json:"token_ujian" binding:"omitempty,min=4,max=12"`
	StartsAt    time.Time `json:"tgljam_mulai" binding:"required"`
	EndsAt      time.Time `json:"tgljam_selesai" binding:"required,gtfield=StartsAt"`
}

// UpdateAgendaRequest is the admin payload for updating an agenda.
type UpdateAgendaRequest struct {
	Name        string    `json:"agenda_ujian" binding:"required,min=2,max=150"`
	Description string    `json:"deskripsi_ujian" binding:"omitempty,max=500"`
	Kind        string    `json:"jenis_tes" binding:"required,max=50"`
	Token       string    `json:"token_ujian" binding:"omitempty,min=4,max=12"`
	StartsAt    time.Time `json:"tgljam_mulai" binding:"required"`
	EndsAt      time.Time `json:"tgljam_selesai" binding:"required,gtfield=StartsAt"`
}

// UnlockAgendaRequest is the participant payload for the token gate.
type UnlockAgendaRequest struct {
	Token string `json:"token_ujian" binding:"required,min=1,max=20"`
}
