package repository

import (
	"context"
	"errors"

	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateUsername = errors.New("participant with this username already exists")

// ParticipantRepository handles participant data access.
type ParticipantRepository struct {
	pool *pgxpool.Pool
}

// NewParticipantRepository creates a new ParticipantRepository.
func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

const participantColumns = `id, username, name, school, grade_level, class_name, phone, guardian_phone, password_hash, created_at, updated_at`

func scanParticipant(row interface{ Scan(...any) error }, p *model.Participant) error {
	return row.Scan(&p.ID, &p.Username, &p.Name, &p.School, &p.GradeLevel, &p.ClassName,
		&p.Phone, &p.GuardianPhone, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID retrieves a participant by ID.
func (r *ParticipantRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Participant, error) {
	p := &model.Participant{}
	row := r.pool.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE id = $1`, id)
	if err := scanParticipant(row, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByUsername retrieves a participant by their unique username.
func (r *ParticipantRepository) GetByUsername(ctx context.Context, username string) (*model.Participant, error) {
	p := &model.Participant{}
	row := r.pool.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE username = $1`, username)
	if err := scanParticipant(row, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPaginated retrieves participants ordered by name.
func (r *ParticipantRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Participant, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM participants`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+participantColumns+` FROM participants ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var participants []model.Participant
	for rows.Next() {
		var p model.Participant
		if err := scanParticipant(rows, &p); err != nil {
			return nil, 0, err
		}
		participants = append(participants, p)
	}
	return participants, total, rows.Err()
}

// ListIDs returns every participant ID, used by the bulk delete.
func (r *ParticipantRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM participants`)
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

// Create inserts a new participant.
func (r *ParticipantRepository) Create(ctx context.Context, p *model.Participant) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO participants (username, name, school, grade_level, class_name, phone, guardian_phone, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		p.Username, p.Name, p.School, p.GradeLevel, p.ClassName, p.Phone, p.GuardianPhone, p.PasswordHash,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// Update modifies a participant's profile (excluding password).
func (r *ParticipantRepository) Update(ctx context.Context, p *model.Participant) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE participants
		 SET username = $1, name = $2, school = $3, grade_level = $4, class_name = $5,
		     phone = $6, guardian_phone = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		p.Username, p.Name, p.School, p.GradeLevel, p.ClassName, p.Phone, p.GuardianPhone, p.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// UpdatePassword updates a participant's password hash.
func (r *ParticipantRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE participants SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id)
	return err
}

// Delete removes a participant by ID.
func (r *ParticipantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM participants WHERE id = $1`, id)
	return err
}
