package service

import (
	"context"

	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/garudacbt/cbt-backend/internal/repository"
	"github.com/garudacbt/cbt-backend/internal/response"
	"github.com/google/uuid"
)

// ResultService handles admin access to exam results.
type ResultService struct {
	resultRepo *repository.ResultRepository
}

// NewResultService creates a new ResultService.
func NewResultService(resultRepo *repository.ResultRepository) *ResultService {
	return &ResultService{resultRepo: resultRepo}
}

// GetByID retrieves a result by ID.
func (s *ResultService) GetByID(ctx context.Context, id uuid.UUID) (*model.ExamResult, error) {
	return s.resultRepo.GetByID(ctx, id)
}

// List retrieves results with filters and pagination, newest first.
func (s *ResultService) List(ctx context.Context, filter model.ResultFilter, page, perPage int) ([]model.ExamResult, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	results, total, err := s.resultRepo.ListFiltered(ctx, filter, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if results == nil {
		results = []model.ExamResult{}
	}

	return results, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}, nil
}

// Delete removes a result by ID.
func (s *ResultService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.resultRepo.Delete(ctx, id)
}
