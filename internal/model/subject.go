package model

import (
	"time"

	"github.com/google/uuid"
)

// Subject represents one test (mata pelajaran) inside an agenda.
type Subject struct {
	ID              uuid.UUID `json:"id"`
	AgendaID        uuid.UUID `json:"agenda_id"`
	Name            string    `json:"nama_mapel"`
	DurationMinutes int       `json:"durasi_menit"`
	QuestionCount   int       `json:"jumlah_soal"`
	Active          bool      `json:"aktif"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateSubjectRequest is the admin payload for creating a subject.
type CreateSubjectRequest struct {
	AgendaID        uuid.UUID `json:"agenda_id" binding:"required"`
	Name            string    `json:"nama_mapel" binding:"required,min=2,max=100"`
	DurationMinutes int       `json:"durasi_menit" binding:"required,min=1,max=480"`
	QuestionCount   int       `json:"jumlah_soal" binding:"min=0"`
	Active          bool      `json:"aktif"`
}

// UpdateSubjectRequest is the admin payload for updating a subject.
type UpdateSubjectRequest struct {
	AgendaID        uuid.UUID `json:"agenda_id" binding:"required"`
	Name            string    `json:"nama_mapel" binding:"required,min=2,max=100"`
	DurationMinutes int       `json:"durasi_menit" binding:"required,min=1,max=480"`
	QuestionCount   int       `json:"jumlah_soal" binding:"min=0"`
	Active          bool      `json:"aktif"`
}
