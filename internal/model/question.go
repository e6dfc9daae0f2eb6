package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QuestionType enumerates the six supported question formats.
type QuestionType string

const (
	// QuestionTypePG is single-answer multiple choice (pilihan ganda).
	QuestionTypePG QuestionType = "PG"
	// QuestionTypePK is multi-answer multiple choice (pilihan ganda kompleks).
	QuestionTypePK QuestionType = "PK"
	// QuestionTypeBS is benar/salah statements.
	QuestionTypeBS QuestionType = "BS"
	// QuestionTypeST is setuju/tidak setuju statements.
	QuestionTypeST QuestionType = "ST"
	// QuestionTypeMJ is menjodohkan (matching pairs).
	QuestionTypeMJ QuestionType = "MJ"
	// QuestionTypeUR is uraian (free-text essay).
	QuestionTypeUR QuestionType = "UR"
)

// TypeLabel returns the Indonesian display label for a question type.
func (t QuestionType) TypeLabel() string {
	switch t {
	case QuestionTypePG:
		return "Pilihan Ganda"
	case QuestionTypePK:
		return "Pilihan Ganda Kompleks"
	case QuestionTypeBS:
		return "Benar/Salah"
	case QuestionTypeST:
		return "Setuju/Tidak Setuju"
	case QuestionTypeMJ:
		return "Menjodohkan"
	case QuestionTypeUR:
		return "Uraian"
	default:
		return string(t)
	}
}

// Valid reports whether t is one of the supported type tags.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypePG, QuestionTypePK, QuestionTypeBS, QuestionTypeST, QuestionTypeMJ, QuestionTypeUR:
		return true
	}
	return false
}

// Question represents a single bank entry. Payload carries the
// type-specific structure; AnswerKey is a single string whose format
// depends on the type.
type Question struct {
	ID        uuid.UUID       `json:"id"`
	SubjectID uuid.UUID       `json:"mapel_id"`
	Number    int             `json:"no_soal"`
	Type      QuestionType    `json:"type_soal"`
	Text      string          `json:"pertanyaan"`
	ImageURL  string          `json:"gambar_url,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	AnswerKey string          `json:"kunci_jawaban"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ChoiceOption is one labeled option of a PG/PK question.
type ChoiceOption struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// ChoicePayload is the payload for PG and PK questions.
type ChoicePayload struct {
	Options []ChoiceOption `json:"options"`
}

// StatementPayload is the payload for BS and ST questions.
type StatementPayload struct {
	Statements []string `json:"statements"`
}

// MatchingPayload is the payload for MJ questions.
type MatchingPayload struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
}

// MaxStatements bounds BS/ST payloads; MaxMatchingPairs bounds MJ.
const (
	MaxStatements    = 5
	MaxMatchingPairs = 8
)

// ErrInvalidQuestionPayload marks a payload that does not fit the
// question type. Concrete validation failures wrap it.
var ErrInvalidQuestionPayload = errors.New("invalid question payload")

// ValidatePayload checks that raw decodes into the payload shape the
// question type requires. UR questions must carry no payload.
func ValidatePayload(t QuestionType, raw json.RawMessage) error {
	switch t {
	case QuestionTypePG, QuestionTypePK:
		var p ChoicePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("%w: decode options: %v", ErrInvalidQuestionPayload, err)
		}
		if len(p.Options) < 2 || len(p.Options) > 5 {
			return fmt.Errorf("%w: choice questions need 2 to 5 options, got %d", ErrInvalidQuestionPayload, len(p.Options))
		}
	case QuestionTypeBS, QuestionTypeST:
		var p StatementPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("%w: decode statements: %v", ErrInvalidQuestionPayload, err)
		}
		if len(p.Statements) < 1 || len(p.Statements) > MaxStatements {
			return fmt.Errorf("%w: statement questions need 1 to %d statements, got %d", ErrInvalidQuestionPayload, MaxStatements, len(p.Statements))
		}
	case QuestionTypeMJ:
		var p MatchingPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("%w: decode matching: %v", ErrInvalidQuestionPayload, err)
		}
		if len(p.Left) < 1 || len(p.Left) > MaxMatchingPairs || len(p.Right) < 1 || len(p.Right) > MaxMatchingPairs {
			return fmt.Errorf("%w: matching questions need 1 to %d entries per side", ErrInvalidQuestionPayload, MaxMatchingPairs)
		}
	case QuestionTypeUR:
		if len(raw) > 0 && string(raw) != "null" && string(raw) != "{}" {
			return fmt.Errorf("%w: essay questions carry no payload", ErrInvalidQuestionPayload)
		}
	default:
		return fmt.Errorf("%w: unknown question type %q", ErrInvalidQuestionPayload, t)
	}
	return nil
}

// QuestionForParticipant is a question as served inside an exam paper,
// with the answer key stripped.
type QuestionForParticipant struct {
	ID       uuid.UUID       `json:"id"`
	Number   int             `json:"no_soal"`
	Type     QuestionType    `json:"type_soal"`
	Text     string          `json:"pertanyaan"`
	ImageURL string          `json:"gambar_url,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

// ForParticipant strips the answer key for delivery to a participant.
func (q *Question) ForParticipant() QuestionForParticipant {
	return QuestionForParticipant{
		ID:       q.ID,
		Number:   q.Number,
		Type:     q.Type,
		Text:     q.Text,
		ImageURL: q.ImageURL,
		Payload:  q.Payload,
	}
}

// CreateQuestionRequest is the admin payload for adding a question.
type CreateQuestionRequest struct {
	SubjectID uuid.UUID       `json:"mapel_id" binding:"required"`
	Number    int             `json:"no_soal" binding:"required,min=1"`
	Type      QuestionType    `json:"type_soal" binding:"required,oneof=PG PK BS ST MJ UR"`
	Text      string          `json:"pertanyaan" binding:"required,min=1"`
	ImageURL  string          `json:"gambar_url" binding:"omitempty,max=500"`
	Payload   json.RawMessage `json:"payload"`
	AnswerKey string          `json:"kunci_jawaban" binding:"omitempty,max=2000"`
}

// UpdateQuestionRequest is the admin payload for updating a question.
type UpdateQuestionRequest struct {
	Number    int             `json:"no_soal" binding:"required,min=1"`
	Type      QuestionType    `json:"type_soal" binding:"required,oneof=PG PK BS ST MJ UR"`
	Text      string          `json:"pertanyaan" binding:"required,min=1"`
	ImageURL  string          `json:"gambar_url" binding:"omitempty,max=500"`
	Payload   json.RawMessage `json:"payload"`
	AnswerKey string          `json:"kunci_jawaban" binding:"omitempty,max=2000"`
}
