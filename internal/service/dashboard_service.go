package service

import (
	"context"

	"github.com/garudacbt/cbt-backend/internal/repository"
)

// DashboardSummary is the admin panel landing payload.
type DashboardSummary struct {
	Counts        repository.SummaryCounts `json:"counts"`
	AverageScores map[string]float64       `json:"average_scores"`
}

// DashboardService assembles the admin dashboard overview.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// GetSummary retrieves the collection totals and per-subject averages.
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	counts, err := s.dashboardRepo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}
	averages, err := s.dashboardRepo.AverageScoreBySubject(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardSummary{Counts: counts, AverageScores: averages}, nil
}
