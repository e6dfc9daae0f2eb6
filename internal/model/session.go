package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus enumerates exam session states. FINISHED is terminal.
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusFinished   SessionStatus = "FINISHED"
)

// ExamSession represents one attempt of a participant at a subject.
// Starting a subject again always creates a fresh session.
type ExamSession struct {
	ID            uuid.UUID     `json:"id"`
	ParticipantID uuid.UUID     `json:"peserta_id"`
	AgendaID      uuid.UUID     `json:"agenda_id"`
	SubjectID     uuid.UUID     `json:"mapel_id"`
	StartedAt     time.Time     `json:"started_at"`
	Deadline      time.Time     `json:"deadline"`
	FinishedAt    *time.Time    `json:"finished_at,omitempty"`
	Status        SessionStatus `json:"status"`
}

// RemainingSeconds returns the whole seconds left until the deadline,
// clamped at zero.
func (s *ExamSession) RemainingSeconds(now time.Time) int {
	if s.Status == SessionStatusFinished || !now.Before(s.Deadline) {
		return 0
	}
	return int(s.Deadline.Sub(now).Seconds())
}

// StartSubjectRequest is the participant payload for starting a subject.
// The agenda token is revalidated so a session can only be opened for a
// subject of an agenda the participant actually unlocked.
type StartSubjectRequest struct {
	Token string `json:"token_ujian" binding:"required,min=1,max=20"`
}

// SubmitAnswerRequest is the participant payload for answering one
// question. Slot is only meaningful for statement questions; Value is
// the option letter, statement code, or free text depending on type.
type SubmitAnswerRequest struct {
	QuestionID uuid.UUID `json:"question_id" binding:"required"`
	Value      string    `json:"value" binding:"omitempty,max=5000"`
	Slot       int       `json:"slot" binding:"omitempty,min=1,max=5"`
}

// ExamPaper is the question set served when a session starts.
type ExamPaper struct {
	SessionID        uuid.UUID                `json:"session_id"`
	SubjectID        uuid.UUID                `json:"mapel_id"`
	SubjectName      string                   `json:"mapel_nama"`
	RemainingSeconds int                      `json:"remaining_seconds"`
	Questions        []QuestionForParticipant `json:"questions"`
	Answers          map[string]string        `json:"jawaban"`
}

// SessionState is the lightweight view used by clients to recover after
// a reload: remaining time plus the answers saved so far.
type SessionState struct {
	SessionID        uuid.UUID         `json:"session_id"`
	Status           SessionStatus     `json:"status"`
	RemainingSeconds int               `json:"remaining_seconds"`
	Answers          map[string]string `json:"jawaban"`
}
