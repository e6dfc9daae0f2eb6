package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/garudacbt/cbt-backend/internal/config"
	"github.com/garudacbt/cbt-backend/internal/exam"
	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/garudacbt/cbt-backend/internal/repository"
	"github.com/garudacbt/cbt-backend/internal/spreadsheet"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// questionSheetHeaders is the flat column layout used for bulk question
// management. Typed payloads are flattened into per-option and
// per-statement columns; unused columns stay empty.
var questionSheetHeaders = []string{
	"no_soal", "type_soal", "pertanyaan", "gambar_url",
	"pilihan_a", "pilihan_b", "pilihan_c", "pilihan_d", "pilihan_e",
	"pernyataan_1", "pernyataan_2", "pernyataan_3", "pernyataan_4", "pernyataan_5",
	"pasangan_kiri_1", "pasangan_kiri_2", "pasangan_kiri_3", "pasangan_kiri_4",
	"pasangan_kiri_5", "pasangan_kiri_6", "pasangan_kiri_7", "pasangan_kiri_8",
	"pasangan_kanan_1", "pasangan_kanan_2", "pasangan_kanan_3", "pasangan_kanan_4",
	"pasangan_kanan_5", "pasangan_kanan_6", "pasangan_kanan_7", "pasangan_kanan_8",
	"kunci_jawaban",
}

var choiceLabels = []string{"A", "B", "C", "D", "E"}

// QuestionService handles question bank management.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	subjectRepo  *repository.SubjectRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, subjectRepo *repository.SubjectRepository, rdb *redis.Client, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		subjectRepo:  subjectRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

// GetByID retrieves a question by ID.
func (s *QuestionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

// ListBySubject retrieves a subject's questions ordered by number.
func (s *QuestionService) ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]model.Question, error) {
	questions, err := s.questionRepo.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

// Create inserts a question after validating its payload shape.
func (s *QuestionService) Create(ctx context.Context, req *model.CreateQuestionRequest) (*model.Question, error) {
	if _, err := s.subjectRepo.GetByID(ctx, req.SubjectID); err != nil {
		return nil, err
	}
	if err := model.ValidatePayload(req.Type, req.Payload); err != nil {
		return nil, err
	}

	q := &model.Question{
		SubjectID: req.SubjectID,
		Number:    req.Number,
		Type:      req.Type,
		Text:      req.Text,
		ImageURL:  req.ImageURL,
		Payload:   req.Payload,
		AnswerKey: exam.Normalize(req.AnswerKey),
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	s.invalidateKeys(ctx, q.SubjectID)
	return q, nil
}

// Update modifies a question after validating its payload shape.
func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateQuestionRequest) (*model.Question, error) {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := model.ValidatePayload(req.Type, req.Payload); err != nil {
		return nil, err
	}

	q.Number = req.Number
	q.Type = req.Type
	q.Text = req.Text
	q.ImageURL = req.ImageURL
	q.Payload = req.Payload
	q.AnswerKey = exam.Normalize(req.AnswerKey)

	if err := s.questionRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	s.invalidateKeys(ctx, q.SubjectID)
	return q, nil
}

// Delete removes a question by ID.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateKeys(ctx, q.SubjectID)
	return nil
}

// DeleteAllBySubject removes every question of one subject, one delete
// per record, reporting counts instead of rolling back.
func (s *QuestionService) DeleteAllBySubject(ctx context.Context, subjectID uuid.UUID) (deleted, failed int, err error) {
	ids, err := s.questionRepo.ListIDsBySubject(ctx, subjectID)
	if err != nil {
		return 0, 0, err
	}
	for _, id := range ids {
		if err := s.questionRepo.Delete(ctx, id); err != nil {
			s.log.Error().Err(err).Str("id", id.String()).Msg("Delete question failed")
			failed++
			continue
		}
		deleted++
	}
	s.invalidateKeys(ctx, subjectID)
	return deleted, failed, nil
}

// Import creates one question per spreadsheet row, mapping the flat
// columns into the typed payload for the row's question type. Failed
// rows are counted and skipped.
func (s *QuestionService) Import(ctx context.Context, subjectID uuid.UUID, records []spreadsheet.Record) (imported, failed int) {
	for _, rec := range records {
		req, err := questionFromRecord(subjectID, rec)
		if err != nil {
			s.log.Warn().Err(err).Str("no_soal", rec["no_soal"]).Msg("Import row rejected")
			failed++
			continue
		}
		if _, err := s.Create(ctx, req); err != nil {
			s.log.Warn().Err(err).Str("no_soal", rec["no_soal"]).Msg("Import row failed")
			failed++
			continue
		}
		imported++
	}
	return imported, failed
}

// Export flattens a subject's questions into spreadsheet records.
func (s *QuestionService) Export(ctx context.Context, subjectID uuid.UUID) ([]string, []spreadsheet.Record, error) {
	questions, err := s.questionRepo.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, nil, err
	}

	records := make([]spreadsheet.Record, 0, len(questions))
	for i := range questions {
		rec, err := questionToRecord(&questions[i])
		if err != nil {
			return nil, nil, err
		}
		records = append(records, rec)
	}
	return questionSheetHeaders, records, nil
}

// questionFromRecord builds a create request from one flat sheet row.
func questionFromRecord(subjectID uuid.UUID, rec spreadsheet.Record) (*model.CreateQuestionRequest, error) {
	number, err := strconv.Atoi(rec["no_soal"])
	if err != nil {
		return nil, fmt.Errorf("invalid no_soal %q", rec["no_soal"])
	}
	qType := model.QuestionType(exam.Normalize(rec["type_soal"]))
	if !qType.Valid() {
		return nil, fmt.Errorf("unknown type_soal %q", rec["type_soal"])
	}

	payload, err := payloadFromRecord(qType, rec)
	if err != nil {
		return nil, err
	}

	return &model.CreateQuestionRequest{
		SubjectID: subjectID,
		Number:    number,
		Type:      qType,
		Text:      rec["pertanyaan"],
		ImageURL:  rec["gambar_url"],
		Payload:   payload,
		AnswerKey: rec["kunci_jawaban"],
	}, nil
}

func payloadFromRecord(t model.QuestionType, rec spreadsheet.Record) (json.RawMessage, error) {
	switch t {
	case model.QuestionTypePG, model.QuestionTypePK:
		p := model.ChoicePayload{}
		for _, label := range choiceLabels {
			text := rec["pilihan_"+lower(label)]
			if text == "" {
				continue
			}
			p.Options = append(p.Options, model.ChoiceOption{Label: label, Text: text})
		}
		return json.Marshal(p)
	case model.QuestionTypeBS, model.QuestionTypeST:
		p := model.StatementPayload{}
		for i := 1; i <= model.MaxStatements; i++ {
			text := rec["pernyataan_"+strconv.Itoa(i)]
			if text == "" {
				continue
			}
			p.Statements = append(p.Statements, text)
		}
		return json.Marshal(p)
	case model.QuestionTypeMJ:
		p := model.MatchingPayload{}
		for i := 1; i <= model.MaxMatchingPairs; i++ {
			if left := rec["pasangan_kiri_"+strconv.Itoa(i)]; left != "" {
				p.Left = append(p.Left, left)
			}
			if right := rec["pasangan_kanan_"+strconv.Itoa(i)]; right != "" {
				p.Right = append(p.Right, right)
			}
		}
		return json.Marshal(p)
	case model.QuestionTypeUR:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown question type %q", t)
	}
}

// questionToRecord flattens a question into one sheet row. The internal
// id is never exported.
func questionToRecord(q *model.Question) (spreadsheet.Record, error) {
	rec := spreadsheet.Record{
		"no_soal":       strconv.Itoa(q.Number),
		"type_soal":     string(q.Type),
		"pertanyaan":    q.Text,
		"gambar_url":    q.ImageURL,
		"kunci_jawaban": q.AnswerKey,
	}

	switch q.Type {
	case model.QuestionTypePG, model.QuestionTypePK:
		var p model.ChoicePayload
		if err := json.Unmarshal(q.Payload, &p); err != nil {
			return nil, fmt.Errorf("question %d: %w", q.Number, err)
		}
		for _, opt := range p.Options {
			rec["pilihan_"+lower(opt.Label)] = opt.Text
		}
	case model.QuestionTypeBS, model.QuestionTypeST:
		var p model.StatementPayload
		if err := json.Unmarshal(q.Payload, &p); err != nil {
			return nil, fmt.Errorf("question %d: %w", q.Number, err)
		}
		for i, stmt := range p.Statements {
			rec["pernyataan_"+strconv.Itoa(i+1)] = stmt
		}
	case model.QuestionTypeMJ:
		var p model.MatchingPayload
		if err := json.Unmarshal(q.Payload, &p); err != nil {
			return nil, fmt.Errorf("question %d: %w", q.Number, err)
		}
		for i, left := range p.Left {
			rec["pasangan_kiri_"+strconv.Itoa(i+1)] = left
		}
		for i, right := range p.Right {
			rec["pasangan_kanan_"+strconv.Itoa(i+1)] = right
		}
	}
	return rec, nil
}

func lower(label string) string {
	if len(label) == 1 && label[0] >= 'A' && label[0] <= 'Z' {
		return string(label[0] + 32)
	}
	return label
}

func (s *QuestionService) invalidateKeys(ctx context.Context, subjectID uuid.UUID) {
	err := s.rdb.Del(ctx,
		config.CacheKey.SubjectAnswerKeysKey(subjectID.String()),
		config.CacheKey.SubjectPaperKey(subjectID.String()),
	).Err()
	if err != nil {
		s.log.Warn().Err(err).Str("subject_id", subjectID.String()).Msg("Failed to invalidate subject caches")
	}
}
