package repository

import (
	"context"
	"errors"
	"time"

	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository handles exam session data access.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

const sessionColumns = `id, participant_id, agenda_id, subject_id, started_at, deadline, finished_at, status`

func scanSession(row interface{ Scan(...any) error }, s *model.ExamSession) error {
	return row.Scan(&s.ID, &s.ParticipantID, &s.AgendaID, &s.SubjectID,
		&s.StartedAt, &s.Deadline, &s.FinishedAt, &s.Status)
}

// GetByID retrieves a session by ID.
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ExamSession, error) {
	s := &model.ExamSession{}
	row := r.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM exam_sessions WHERE id = $1`, id)
	if err := scanSession(row, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a fresh session. Every start gets its own row; there
// is no resume of earlier attempts.
func (r *SessionRepository) Create(ctx context.Context, s *model.ExamSession) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exam_sessions (participant_id, agenda_id, subject_id, started_at, deadline, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		s.ParticipantID, s.AgendaID, s.SubjectID, s.StartedAt, s.Deadline, model.SessionStatusInProgress,
	).Scan(&s.ID)
}

// Finish transitions a session to FINISHED. Returns false when the
// session was already finished, which makes the operation idempotent:
// only the first caller observes true and may write the result.
func (r *SessionRepository) Finish(ctx context.Context, id uuid.UUID, finishedAt time.Time) (bool, error) {
	var returned uuid.UUID
	err := r.pool.QueryRow(ctx,
		`UPDATE exam_sessions
		 SET status = $1, finished_at = $2
		 WHERE id = $3 AND status = $4
		 RETURNING id`,
		model.SessionStatusFinished, finishedAt, id, model.SessionStatusInProgress,
	).Scan(&returned)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListExpiredInProgress returns sessions whose deadline has passed but
// that were never finished, for recovery after a restart.
func (r *SessionRepository) ListExpiredInProgress(ctx context.Context, now time.Time) ([]model.ExamSession, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM exam_sessions
		 WHERE status = $1 AND deadline <= $2`,
		model.SessionStatusInProgress, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.ExamSession
	for rows.Next() {
		var s model.ExamSession
		if err := scanSession(rows, &s); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// UpsertAnswer stores one autosaved answer for a session.
func (r *SessionRepository) UpsertAnswer(ctx context.Context, sessionID uuid.UUID, questionID uuid.UUID, value string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO session_answers (session_id, question_id, value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id, question_id)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP`,
		sessionID, questionID, value)
	return err
}

// AnswersBySession loads the persisted answers of one session.
func (r *SessionRepository) AnswersBySession(ctx context.Context, sessionID uuid.UUID) (map[string]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT question_id, value FROM session_answers WHERE session_id = $1`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := make(map[string]string)
	for rows.Next() {
		var questionID uuid.UUID
		var value string
		if err := rows.Scan(&questionID, &value); err != nil {
			return nil, err
		}
		answers[questionID.String()] = value
	}
	return answers, rows.Err()
}
