package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardRepository handles admin dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// SummaryCounts holds the per-collection totals shown on the admin panel.
type SummaryCounts struct {
	Participants int `json:"peserta"`
	Agendas      int `json:"agenda_ujian"`
	Subjects     int `json:"mata_pelajaran"`
	Questions    int `json:"bank_soal"`
	Results      int `json:"hasil_ujian"`
}

// GetSummaryCounts retrieves the high-level totals for the dashboard.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (SummaryCounts, error) {
	var c SummaryCounts
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM participants),
			(SELECT COUNT(*) FROM agendas),
			(SELECT COUNT(*) FROM subjects),
			(SELECT COUNT(*) FROM questions),
			(SELECT COUNT(*) FROM exam_results)`,
	).Scan(&c.Participants, &c.Agendas, &c.Subjects, &c.Questions, &c.Results)
	return c, err
}

// AverageScoreBySubject returns subject name to average score over all
// results, for the admin results overview.
func (r *DashboardRepository) AverageScoreBySubject(ctx context.Context) (map[string]float64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT subject_name, AVG(score) FROM exam_results GROUP BY subject_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	averages := make(map[string]float64)
	for rows.Next() {
		var name string
		var avg float64
		if err := rows.Scan(&name, &avg); err != nil {
			return nil, err
		}
		averages[name] = avg
	}
	return averages, rows.Err()
}
