package service

import (
	"context"

	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/garudacbt/cbt-backend/internal/repository"
	"github.com/garudacbt/cbt-backend/internal/response"
	"github.com/garudacbt/cbt-backend/internal/spreadsheet"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// participantSheetHeaders is the exported column order. The internal id
// is deliberately absent.
var participantSheetHeaders = []string{
	"username", "nama_peserta", "asal_sekolah", "jenjang_studi", "kelas",
	"no_wa_peserta", "no_wa_ortu", "password",
}

// ParticipantService handles participant management and registration.
type ParticipantService struct {
	participantRepo *repository.ParticipantRepository
	auth            *AuthService
	log             zerolog.Logger
}

// NewParticipantService creates a new ParticipantService.
func NewParticipantService(participantRepo *repository.ParticipantRepository, auth *AuthService, log zerolog.Logger) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		auth:            auth,
		log:             log.With().Str("component", "participant_service").Logger(),
	}
}

// GetByID retrieves a participant by ID.
func (s *ParticipantService) GetByID(ctx context.Context, id uuid.UUID) (*model.Participant, error) {
	return s.participantRepo.GetByID(ctx, id)
}

// GetByUsername retrieves a participant by username.
func (s *ParticipantService) GetByUsername(ctx context.Context, username string) (*model.Participant, error) {
	return s.participantRepo.GetByUsername(ctx, username)
}

// Register creates a participant from a self-registration. The username
// falls back to the WhatsApp number when not supplied.
func (s *ParticipantService) Register(ctx context.Context, req *model.RegisterParticipantRequest) (*model.Participant, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	p := &model.Participant{
		Username:      req.EffectiveUsername(),
		Name:          req.Name,
		School:        req.School,
		GradeLevel:    req.GradeLevel,
		ClassName:     req.ClassName,
		Phone:         req.Phone,
		GuardianPhone: req.GuardianPhone,
		PasswordHash:  hash,
	}
	if err := s.participantRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List retrieves participants with pagination.
func (s *ParticipantService) List(ctx context.Context, page, perPage int) ([]model.Participant, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	participants, total, err := s.participantRepo.ListPaginated(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if participants == nil {
		participants = []model.Participant{}
	}

	return participants, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}, nil
}

// Create inserts a participant from the admin panel.
func (s *ParticipantService) Create(ctx context.Context, req *model.CreateParticipantRequest) (*model.Participant, error) {
	username := req.Username
	if username == "" {
		username = req.Phone
	}
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	p := &model.Participant{
		Username:      username,
		Name:          req.Name,
		School:        req.School,
		GradeLevel:    req.GradeLevel,
		ClassName:     req.ClassName,
		Phone:         req.Phone,
		GuardianPhone: req.GuardianPhone,
		PasswordHash:  hash,
	}
	if err := s.participantRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update modifies a participant; the password is only rehashed when set.
func (s *ParticipantService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateParticipantRequest) (*model.Participant, error) {
	p, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Username = req.Username
	p.Name = req.Name
	p.School = req.School
	p.GradeLevel = req.GradeLevel
	p.ClassName = req.ClassName
	p.Phone = req.Phone
	p.GuardianPhone = req.GuardianPhone
	if err := s.participantRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		if err := s.participantRepo.UpdatePassword(ctx, id, hash); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Delete removes a participant by ID.
func (s *ParticipantService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.participantRepo.Delete(ctx, id)
}

// DeleteAll removes every participant, one delete per record. There is
// no transaction: a partial failure leaves the remainder in place and
// is reported as counts.
func (s *ParticipantService) DeleteAll(ctx context.Context) (deleted, failed int, err error) {
	ids, err := s.participantRepo.ListIDs(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, id := range ids {
		if err := s.participantRepo.Delete(ctx, id); err != nil {
			s.log.Error().Err(err).Str("id", id.String()).Msg("Delete participant failed")
			failed++
			continue
		}
		deleted++
	}
	return deleted, failed, nil
}

// Import creates one participant per spreadsheet row. Failed rows are
// counted, not itemized, and do not stop the rest of the file.
func (s *ParticipantService) Import(ctx context.Context, records []spreadsheet.Record) (imported, failed int) {
	for _, rec := range records {
		req := &model.RegisterParticipantRequest{
			Username:      rec["username"],
			Name:          rec["nama_peserta"],
			School:        rec["asal_sekolah"],
			GradeLevel:    rec["jenjang_studi"],
			ClassName:     rec["kelas"],
			Phone:         rec["no_wa_peserta"],
			GuardianPhone: rec["no_wa_ortu"],
			Password:      rec["password"],
		}
		if req.Password == "" {
			// Imported accounts default to the WhatsApp number.
			req.Password = req.Phone
		}
		if _, err := s.Register(ctx, req); err != nil {
			s.log.Warn().Err(err).Str("username", req.EffectiveUsername()).Msg("Import row failed")
			failed++
			continue
		}
		imported++
	}
	return imported, failed
}

// Export renders every participant as spreadsheet records. Password
// hashes and internal ids are not exported.
func (s *ParticipantService) Export(ctx context.Context) ([]string, []spreadsheet.Record, error) {
	participants, _, err := s.participantRepo.ListPaginated(ctx, 100000, 0)
	if err != nil {
		return nil, nil, err
	}

	records := make([]spreadsheet.Record, 0, len(participants))
	for _, p := range participants {
		records = append(records, spreadsheet.Record{
			"username":      p.Username,
			"nama_peserta":  p.Name,
			"asal_sekolah":  p.School,
			"jenjang_studi": p.GradeLevel,
			"kelas":         p.ClassName,
			"no_wa_peserta": p.Phone,
			"no_wa_ortu":    p.GuardianPhone,
		})
	}
	return participantSheetHeaders, records, nil
}

func clampPage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}
