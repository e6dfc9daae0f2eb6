package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Participant represents an exam participant (peserta).
type Participant struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Name          string    `json:"nama_peserta"`
	School        string    `json:"asal_sekolah"`
	GradeLevel    string    `json:"jenjang_studi"`
	ClassName     string    `json:"kelas"`
	Phone         string    `json:"no_wa_peserta"`
	GuardianPhone string    `json:"no_wa_ortu"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RegisterParticipantRequest is the payload for self-registration.
// Username defaults to the participant's WhatsApp number when omitted.
type RegisterParticipantRequest struct {
	Username      string `json:"username" binding:"omitempty,min=4,max=30"`
	Name          string `json:"nama_peserta" binding:"required,min=2,max=100"`
	School        string `json:"asal_sekolah" binding:"required,min=2,max=100"`
	GradeLevel    string `json:"jenjang_studi" binding:"required,max=50"`
	ClassName     string `json:"kelas" binding:"required,max=50"`
	Phone         string `json:"no_wa_peserta" binding:"required,min=8,max=20"`
	GuardianPhone string `json:"no_wa_ortu" binding:"required,min=8,max=20"`
	Password      string `json:"password" binding:"required,min=6,max=128"`
}

// EffectiveUsername resolves the login username for a registration,
// falling back to the participant's WhatsApp number.
func (r *RegisterParticipantRequest) EffectiveUsername() string {
	if u := strings.TrimSpace(r.Username); u != "" {
		return u
	}
	return strings.TrimSpace(r.Phone)
}

// ParticipantLoginRequest is the payload for participant authentication.
type ParticipantLoginRequest struct {
	Username string `json:"username" binding:"required,min=4,max=30"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// ParticipantLoginResponse is returned after successful participant login.
type ParticipantLoginResponse struct {
	Token       string      `json:"token"`
	Participant Participant `json:"participant"`
}

// CreateParticipantRequest is the admin payload for creating a participant.
type CreateParticipantRequest struct {
	Username      string `json:"username" binding:"omitempty,min=4,max=30"`
	Name          string `json:"nama_peserta" binding:"required,min=2,max=100"`
	School        string `json:"asal_sekolah" binding:"required,max=100"`
	GradeLevel    string `json:"jenjang_studi" binding:"omitempty,max=50"`
	ClassName     string `json:"kelas" binding:"omitempty,max=50"`
	Phone         string `json:"no_wa_peserta" binding:"required,min=8,max=20"`
	GuardianPhone string `json:"no_wa_ortu" binding:"omitempty,max=20"`
	Password      string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateParticipantRequest is the admin payload for updating a participant.
// Password is only rehashed when provided.
type UpdateParticipantRequest struct {
	Username      string `json:"username" binding:"required,min=4,max=30"`
	Name          string `json:"nama_peserta" binding:"required,min=2,max=100"`
	School        string `json:"asal_sekolah" binding:"required,max=100"`
	GradeLevel    string `json:"jenjang_studi" binding:"omitempty,max=50"`
	ClassName     string `json:"kelas" binding:"omitempty,max=50"`
	Phone         string `json:"no_wa_peserta" binding:"required,min=8,max=20"`
	GuardianPhone string `json:"no_wa_ortu" binding:"omitempty,max=20"`
	Password      string `json:"password" binding:"omitempty,min=6,max=128"`
}
