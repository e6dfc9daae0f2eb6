package repository

import (
	"context"

	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubjectRepository handles subject data access.
type SubjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

const subjectColumns = `id, agenda_id, name, duration_minutes, question_count, active, created_at, updated_at`

func scanSubject(row interface{ Scan(...any) error }, s *model.Subject) error {
	return row.Scan(&s.ID, &s.AgendaID, &s.Name, &s.DurationMinutes,
		&s.QuestionCount, &s.Active, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a subject by ID.
func (r *SubjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	s := &model.Subject{}
	row := r.pool.QueryRow(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE id = $1`, id)
	if err := scanSubject(row, s); err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves all subjects ordered by name.
func (r *SubjectRepository) List(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+subjectColumns+` FROM subjects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubjects(rows)
}

// ListByAgenda retrieves subjects of one agenda, optionally only active ones.
func (r *SubjectRepository) ListByAgenda(ctx context.Context, agendaID uuid.UUID, activeOnly bool) ([]model.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE agenda_id = $1`
	if activeOnly {
		query += ` AND active`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, agendaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubjects(rows)
}

func collectSubjects(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]model.Subject, error) {
	var subjects []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := scanSubject(rows, &s); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (agenda_id, name, duration_minutes, question_count, active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		s.AgendaID, s.Name, s.DurationMinutes, s.QuestionCount, s.Active,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update modifies a subject.
func (r *SubjectRepository) Update(ctx context.Context, s *model.Subject) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE subjects
		 SET agenda_id = $1, name = $2, duration_minutes = $3, question_count = $4, active = $5,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6`,
		s.AgendaID, s.Name, s.DurationMinutes, s.QuestionCount, s.Active, s.ID)
	return err
}

// Delete removes a subject by ID.
func (r *SubjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	return err
}
