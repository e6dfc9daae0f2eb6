package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResultRepository handles exam result data access.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Create inserts a result row. session_id is unique, so a second write
// for the same session fails instead of duplicating the result.
func (r *ResultRepository) Create(ctx context.Context, res *model.ExamResult) error {
	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO exam_results
		   (session_id, participant_id, participant_name, agenda_id, subject_id, subject_name,
		    answers, correct, wrong, score, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		res.SessionID, res.ParticipantID, res.ParticipantName, res.AgendaID,
		res.SubjectID, res.SubjectName, answers, res.Correct, res.Wrong, res.Score, res.FinishedAt,
	).Scan(&res.ID)
}

const resultColumns = `id, session_id, participant_id, participant_name, agenda_id, subject_id, subject_name, answers, correct, wrong, score, finished_at`

func scanResult(row interface{ Scan(...any) error }, res *model.ExamResult) error {
	var answers []byte
	if err := row.Scan(&res.ID, &res.SessionID, &res.ParticipantID, &res.ParticipantName,
		&res.AgendaID, &res.SubjectID, &res.SubjectName, &answers,
		&res.Correct, &res.Wrong, &res.Score, &res.FinishedAt); err != nil {
		return err
	}
	return json.Unmarshal(answers, &res.Answers)
}

// GetByID retrieves a result by ID.
func (r *ResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ExamResult, error) {
	res := &model.ExamResult{}
	row := r.pool.QueryRow(ctx, `SELECT `+resultColumns+` FROM exam_results WHERE id = $1`, id)
	if err := scanResult(row, res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetBySession retrieves the result written for one session, if any.
func (r *ResultRepository) GetBySession(ctx context.Context, sessionID uuid.UUID) (*model.ExamResult, error) {
	res := &model.ExamResult{}
	row := r.pool.QueryRow(ctx, `SELECT `+resultColumns+` FROM exam_results WHERE session_id = $1`, sessionID)
	if err := scanResult(row, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ListFiltered retrieves results with optional filters, newest first.
func (r *ResultRepository) ListFiltered(ctx context.Context, f model.ResultFilter, limit, offset int) ([]model.ExamResult, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	if f.AgendaID != nil {
		args = append(args, *f.AgendaID)
		where += fmt.Sprintf(" AND agenda_id = $%d", len(args))
	}
	if f.SubjectID != nil {
		args = append(args, *f.SubjectID)
		where += fmt.Sprintf(" AND subject_id = $%d", len(args))
	}
	if f.ParticipantID != nil {
		args = append(args, *f.ParticipantID)
		where += fmt.Sprintf(" AND participant_id = $%d", len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM exam_results`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + resultColumns + ` FROM exam_results` + where +
		fmt.Sprintf(` ORDER BY finished_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var results []model.ExamResult
	for rows.Next() {
		var res model.ExamResult
		if err := scanResult(rows, &res); err != nil {
			return nil, 0, err
		}
		results = append(results, res)
	}
	return results, total, rows.Err()
}

// Delete removes a result by ID.
func (r *ResultRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exam_results WHERE id = $1`, id)
	return err
}
