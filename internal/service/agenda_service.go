package service

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/garudacbt/cbt-backend/internal/exam"
	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/garudacbt/cbt-backend/internal/repository"
	"github.com/google/uuid"
)

// tokenAlphabet avoids letters easy to confuse on paper (no I, O, 0, 1).
const tokenAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const tokenLength = 6

// AgendaService handles agenda management.
type AgendaService struct {
	agendaRepo *repository.AgendaRepository
}

// NewAgendaService creates a new AgendaService.
func NewAgendaService(agendaRepo *repository.AgendaRepository) *AgendaService {
	return &AgendaService{agendaRepo: agendaRepo}
}

// GetByID retrieves an agenda by ID.
func (s *AgendaService) GetByID(ctx context.Context, id uuid.UUID) (*model.Agenda, error) {
	return s.agendaRepo.GetByID(ctx, id)
}

// List retrieves all agendas for the admin panel.
func (s *AgendaService) List(ctx context.Context) ([]model.Agenda, error) {
	agendas, err := s.agendaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if agendas == nil {
		agendas = []model.Agenda{}
	}
	return agendas, nil
}

// Create inserts an agenda. The stored token is always uppercase; when
// the request omits one, a random token is generated.
func (s *AgendaService) Create(ctx context.Context, req *model.CreateAgendaRequest) (*model.Agenda, error) {
	token := exam.Normalize(req.Token)
	if token == "" {
		var err error
		token, err = generateToken()
		if err != nil {
			return nil, err
		}
	}

	a := &model.Agenda{
		Name:        req.Name,
		Description: req.Description,
		Kind:        req.Kind,
		Token:       token,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if err := s.agendaRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update modifies an agenda. An omitted token keeps the existing one.
func (s *AgendaService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAgendaRequest) (*model.Agenda, error) {
	a, err := s.agendaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Name = req.Name
	a.Description = req.Description
	a.Kind = req.Kind
	if token := exam.Normalize(req.Token); token != "" {
		a.Token = token
	}
	a.StartsAt = req.StartsAt
	a.EndsAt = req.EndsAt

	if err := s.agendaRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an agenda by ID.
func (s *AgendaService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.agendaRepo.Delete(ctx, id)
}

func generateToken() (string, error) {
	token := make([]byte, tokenLength)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		token[i] = tokenAlphabet[n.Int64()]
	}
	return string(token), nil
}
