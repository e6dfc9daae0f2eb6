package repository

import (
	"context"
	"time"

	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AgendaRepository handles agenda data access.
type AgendaRepository struct {
	pool *pgxpool.Pool
}

// NewAgendaRepository creates a new AgendaRepository.
func NewAgendaRepository(pool *pgxpool.Pool) *AgendaRepository {
	return &AgendaRepository{pool: pool}
}

const agendaColumns = `id, name, description, kind, token, starts_at, ends_at, created_at, updated_at`

func scanAgenda(row interface{ Scan(...any) error }, a *model.Agenda) error {
	return row.Scan(&a.ID, &a.Name, &a.Description, &a.Kind, &a.Token,
		&a.StartsAt, &a.EndsAt, &a.CreatedAt, &a.UpdatedAt)
}

// GetByID retrieves an agenda by ID.
func (r *AgendaRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Agenda, error) {
	a := &model.Agenda{}
	row := r.pool.QueryRow(ctx, `SELECT `+agendaColumns+` FROM agendas WHERE id = $1`, id)
	if err := scanAgenda(row, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List retrieves all agendas, newest window first.
func (r *AgendaRepository) List(ctx context.Context) ([]model.Agenda, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+agendaColumns+` FROM agendas ORDER BY starts_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agendas []model.Agenda
	for rows.Next() {
		var a model.Agenda
		if err := scanAgenda(rows, &a); err != nil {
			return nil, err
		}
		agendas = append(agendas, a)
	}
	return agendas, rows.Err()
}

// ListActive retrieves agendas whose window covers now. Boundaries are
// inclusive.
func (r *AgendaRepository) ListActive(ctx context.Context, now time.Time) ([]model.Agenda, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+agendaColumns+` FROM agendas
		 WHERE starts_at <= $1 AND ends_at >= $1
		 ORDER BY starts_at ASC`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agendas []model.Agenda
	for rows.Next() {
		var a model.Agenda
		if err := scanAgenda(rows, &a); err != nil {
			return nil, err
		}
		agendas = append(agendas, a)
	}
	return agendas, rows.Err()
}

// Create inserts a new agenda.
func (r *AgendaRepository) Create(ctx context.Context, a *model.Agenda) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO agendas (name, description, kind, token, starts_at, ends_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		a.Name, a.Description, a.Kind, a.Token, a.StartsAt, a.EndsAt,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// Update modifies an agenda.
func (r *AgendaRepository) Update(ctx context.Context, a *model.Agenda) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE agendas
		 SET name = $1, description = $2, kind = $3, token = $4, starts_at = $5, ends_at = $6,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		a.Name, a.Description, a.Kind, a.Token, a.StartsAt, a.EndsAt, a.ID)
	return err
}

// Delete removes an agenda by ID.
func (r *AgendaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM agendas WHERE id = $1`, id)
	return err
}
