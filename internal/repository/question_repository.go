package repository

import (
	"context"

	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles question bank data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, subject_id, number, type, text, image_url, payload, answer_key, created_at, updated_at`

func scanQuestion(row interface{ Scan(...any) error }, q *model.Question) error {
	return row.Scan(&q.ID, &q.SubjectID, &q.Number, &q.Type, &q.Text,
		&q.ImageURL, &q.Payload, &q.AnswerKey, &q.CreatedAt, &q.UpdatedAt)
}

// GetByID retrieves a question by ID.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q := &model.Question{}
	row := r.pool.QueryRow(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)
	if err := scanQuestion(row, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ListBySubject retrieves a subject's questions ordered by their number.
func (r *QuestionRepository) ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE subject_id = $1 ORDER BY number ASC`,
		subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := scanQuestion(rows, &q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// AnswerKeysBySubject returns question id to answer key for grading.
func (r *QuestionRepository) AnswerKeysBySubject(ctx context.Context, subjectID uuid.UUID) (map[string]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, answer_key FROM questions WHERE subject_id = $1`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]string)
	for rows.Next() {
		var id uuid.UUID
		var key string
		if err := rows.Scan(&id, &key); err != nil {
			return nil, err
		}
		keys[id.String()] = key
	}
	return keys, rows.Err()
}

// ListIDsBySubject returns every question ID of a subject, used by the
// bulk delete.
func (r *QuestionRepository) ListIDsBySubject(ctx context.Context, subjectID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM questions WHERE subject_id = $1`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// TypesBySubject returns question id to type tag for a subject, used to
// pick the answer-encoding rule per question.
func (r *QuestionRepository) TypesBySubject(ctx context.Context, subjectID uuid.UUID) (map[string]model.QuestionType, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, type FROM questions WHERE subject_id = $1`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make(map[string]model.QuestionType)
	for rows.Next() {
		var id uuid.UUID
		var t model.QuestionType
		if err := rows.Scan(&id, &t); err != nil {
			return nil, err
		}
		types[id.String()] = t
	}
	return types, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (subject_id, number, type, text, image_url, payload, answer_key)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		q.SubjectID, q.Number, q.Type, q.Text, q.ImageURL, q.Payload, q.AnswerKey,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// Update modifies a question.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions
		 SET number = $1, type = $2, text = $3, image_url = $4, payload = $5, answer_key = $6,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		q.Number, q.Type, q.Text, q.ImageURL, q.Payload, q.AnswerKey, q.ID)
	return err
}

// Delete removes a question by ID.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}
