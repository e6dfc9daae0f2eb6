package service

import (
	"context"

	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/garudacbt/cbt-backend/internal/repository"
	"github.com/google/uuid"
)

// SubjectService handles subject management.
type SubjectService struct {
	subjectRepo *repository.SubjectRepository
	agendaRepo  *repository.AgendaRepository
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(subjectRepo *repository.SubjectRepository, agendaRepo *repository.AgendaRepository) *SubjectService {
	return &SubjectService{subjectRepo: subjectRepo, agendaRepo: agendaRepo}
}

// GetByID retrieves a subject by ID.
func (s *SubjectService) GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	return s.subjectRepo.GetByID(ctx, id)
}

// List retrieves all subjects, or only those of one agenda.
func (s *SubjectService) List(ctx context.Context, agendaID *uuid.UUID) ([]model.Subject, error) {
	var subjects []model.Subject
	var err error
	if agendaID != nil {
		subjects, err = s.subjectRepo.ListByAgenda(ctx, *agendaID, false)
	} else {
		subjects, err = s.subjectRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	if subjects == nil {
		subjects = []model.Subject{}
	}
	return subjects, nil
}

// Create inserts a subject after checking its agenda exists.
func (s *SubjectService) Create(ctx context.Context, req *model.CreateSubjectRequest) (*model.Subject, error) {
	if _, err := s.agendaRepo.GetByID(ctx, req.AgendaID); err != nil {
		return nil, err
	}

	subject := &model.Subject{
		AgendaID:        req.AgendaID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		QuestionCount:   req.QuestionCount,
		Active:          req.Active,
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Update modifies a subject.
func (s *SubjectService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateSubjectRequest) (*model.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.agendaRepo.GetByID(ctx, req.AgendaID); err != nil {
		return nil, err
	}

	subject.AgendaID = req.AgendaID
	subject.Name = req.Name
	subject.DurationMinutes = req.DurationMinutes
	subject.QuestionCount = req.QuestionCount
	subject.Active = req.Active

	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Delete removes a subject by ID.
func (s *SubjectService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.subjectRepo.Delete(ctx, id)
}
