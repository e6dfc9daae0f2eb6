package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/garudacbt/cbt-backend/internal/config"
	"github.com/garudacbt/cbt-backend/internal/exam"
	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/garudacbt/cbt-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Exam flow errors.
var (
	ErrAgendaNotActive  = errors.New("agenda is not currently active")
	ErrInvalidExamToken = errors.New("exam token does not match")
	ErrSubjectNotActive = errors.New("subject is not active")
	ErrNoQuestions      = errors.New("subject has no questions")
	ErrSessionFinished  = errors.New("session is already finished")
	ErrNotSessionOwner  = errors.New("session belongs to another participant")
	ErrUnknownQuestion  = errors.New("question does not belong to this session")
	ErrInvalidAnswer    = errors.New("answer value is not valid for this question type")
)

const answerKeysTTL = time.Hour

// ExamFlowService drives the participant exam flow: the token gate,
// session lifecycle, per-question answering and grading.
type ExamFlowService struct {
	agendaRepo      *repository.AgendaRepository
	subjectRepo     *repository.SubjectRepository
	questionRepo    *repository.QuestionRepository
	sessionRepo     *repository.SessionRepository
	resultRepo      *repository.ResultRepository
	participantRepo *repository.ParticipantRepository
	rdb             *redis.Client
	log             zerolog.Logger
}

// NewExamFlowService creates a new ExamFlowService.
func NewExamFlowService(
	agendaRepo *repository.AgendaRepository,
	subjectRepo *repository.SubjectRepository,
	questionRepo *repository.QuestionRepository,
	sessionRepo *repository.SessionRepository,
	resultRepo *repository.ResultRepository,
	participantRepo *repository.ParticipantRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *ExamFlowService {
	return &ExamFlowService{
		agendaRepo:      agendaRepo,
		subjectRepo:     subjectRepo,
		questionRepo:    questionRepo,
		sessionRepo:     sessionRepo,
		resultRepo:      resultRepo,
		participantRepo: participantRepo,
		rdb:             rdb,
		log:             log.With().Str("component", "exam_flow").Logger(),
	}
}

// ListActiveAgendas returns agendas whose window covers now, with the
// join tokens stripped.
func (s *ExamFlowService) ListActiveAgendas(ctx context.Context) ([]model.Agenda, error) {
	agendas, err := s.agendaRepo.ListActive(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("list active agendas: %w", err)
	}
	for i := range agendas {
		agendas[i].Token = ""
	}
	if agendas == nil {
		agendas = []model.Agenda{}
	}
	return agendas, nil
}

// Unlock validates the token gate for an agenda and returns its active
// subjects. A wrong token changes no state; there is no lockout.
func (s *ExamFlowService) Unlock(ctx context.Context, agendaID uuid.UUID, token string) ([]model.Subject, error) {
	agenda, err := s.agendaRepo.GetByID(ctx, agendaID)
	if err != nil {
		return nil, fmt.Errorf("get agenda: %w", err)
	}
	if !agenda.IsActiveAt(time.Now()) {
		return nil, ErrAgendaNotActive
	}
	if !agenda.MatchToken(token) {
		return nil, ErrInvalidExamToken
	}

	subjects, err := s.subjectRepo.ListByAgenda(ctx, agendaID, true)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	if subjects == nil {
		subjects = []model.Subject{}
	}
	return subjects, nil
}

// StartSubject revalidates the agenda token, creates a fresh session
// with deadline now + duration, registers the deadline for the timer
// worker, and returns the paper with answer keys stripped. Every start
// is a new attempt; earlier unfinished sessions are left to expire.
func (s *ExamFlowService) StartSubject(ctx context.Context, participantID, subjectID uuid.UUID, token string) (*model.ExamPaper, error) {
	subject, err := s.subjectRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}
	if !subject.Active {
		return nil, ErrSubjectNotActive
	}

	// Revalidating the token here ties the session to an agenda the
	// participant actually unlocked, without any server-side gate state.
	agenda, err := s.agendaRepo.GetByID(ctx, subject.AgendaID)
	if err != nil {
		return nil, fmt.Errorf("get agenda: %w", err)
	}
	now := time.Now()
	if !agenda.IsActiveAt(now) {
		return nil, ErrAgendaNotActive
	}
	if !agenda.MatchToken(token) {
		return nil, ErrInvalidExamToken
	}

	questions, err := s.subjectPaper(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	session := &model.ExamSession{
		ParticipantID: participantID,
		AgendaID:      agenda.ID,
		SubjectID:     subjectID,
		StartedAt:     now,
		Deadline:      now.Add(time.Duration(subject.DurationMinutes*60) * time.Second),
		Status:        model.SessionStatusInProgress,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if err := s.rdb.ZAdd(ctx, config.CacheKey.SessionDeadlineIndex(), redis.Z{
		Score:  float64(session.Deadline.Unix()),
		Member: session.ID.String(),
	}).Err(); err != nil {
		// The recovery scan picks expired sessions up from PostgreSQL,
		// so a failed index write only delays the forced finish.
		s.log.Warn().Err(err).Str("session_id", session.ID.String()).Msg("Failed to index deadline")
	}

	return &model.ExamPaper{
		SessionID:        session.ID,
		SubjectID:        subject.ID,
		SubjectName:      subject.Name,
		RemainingSeconds: session.RemainingSeconds(now),
		Questions:        questions,
		Answers:          map[string]string{},
	}, nil
}

// subjectPaper loads the participant view of a subject's questions,
// answer keys stripped, with a short-lived Redis cache in front of
// PostgreSQL. Question edits invalidate the cache.
func (s *ExamFlowService) subjectPaper(ctx context.Context, subjectID uuid.UUID) ([]model.QuestionForParticipant, error) {
	cacheKey := config.CacheKey.SubjectPaperKey(subjectID.String())

	cached, err := s.rdb.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		var questions []model.QuestionForParticipant
		if err := json.Unmarshal([]byte(cached), &questions); err == nil {
			return questions, nil
		}
	}

	full, err := s.questionRepo.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	questions := make([]model.QuestionForParticipant, 0, len(full))
	for i := range full {
		questions = append(questions, full[i].ForParticipant())
	}

	if len(questions) > 0 {
		if raw, err := json.Marshal(questions); err == nil {
			_ = s.rdb.Set(ctx, cacheKey, raw, answerKeysTTL).Err()
		}
	}
	return questions, nil
}

// GetState returns the remaining time and autosaved answers of a
// session, so a reload inside one attempt does not lose the timer.
func (s *ExamFlowService) GetState(ctx context.Context, participantID, sessionID uuid.UUID) (*model.SessionState, error) {
	session, err := s.ownedSession(ctx, participantID, sessionID)
	if err != nil {
		return nil, err
	}

	answers, err := s.sessionAnswers(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &model.SessionState{
		SessionID:        session.ID,
		Status:           session.Status,
		RemainingSeconds: session.RemainingSeconds(time.Now()),
		Answers:          answers,
	}, nil
}

// SubmitAnswer applies the type-specific encoding rule for one question
// and stores the updated value in the session's Redis hash, then queues
// it for asynchronous persistence. Returns the stored encoding.
func (s *ExamFlowService) SubmitAnswer(ctx context.Context, participantID, sessionID uuid.UUID, req *model.SubmitAnswerRequest) (string, error) {
	session, err := s.ownedSession(ctx, participantID, sessionID)
	if err != nil {
		return "", err
	}
	if session.Status != model.SessionStatusInProgress || !time.Now().Before(session.Deadline) {
		return "", ErrSessionFinished
	}

	types, err := s.questionRepo.TypesBySubject(ctx, session.SubjectID)
	if err != nil {
		return "", fmt.Errorf("load question types: %w", err)
	}
	qType, ok := types[req.QuestionID.String()]
	if !ok {
		return "", ErrUnknownQuestion
	}

	answersKey := config.CacheKey.SessionAnswersKey(sessionID.String())
	current, err := s.rdb.HGet(ctx, answersKey, req.QuestionID.String()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("read current answer: %w", err)
	}

	encoded, err := encodeAnswer(qType, current, req.Value, req.Slot)
	if err != nil {
		return "", err
	}

	if err := s.rdb.HSet(ctx, answersKey, req.QuestionID.String(), encoded).Err(); err != nil {
		return "", fmt.Errorf("autosave answer: %w", err)
	}

	payload, _ := json.Marshal(persistAnswerPayload{
		SessionID:  sessionID.String(),
		QuestionID: req.QuestionID.String(),
		Value:      encoded,
	})
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistAnswersQueue, payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID.String()).Msg("Failed to queue answer persist")
	}

	return encoded, nil
}

// persistAnswerPayload is the queue message consumed by the autosave worker.
type persistAnswerPayload struct {
	SessionID  string `json:"session_id"`
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
}

// encodeAnswer applies the per-type answer encoding rule.
func encodeAnswer(t model.QuestionType, current, value string, slot int) (string, error) {
	switch t {
	case model.QuestionTypePG:
		letter := exam.Normalize(value)
		if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'E' {
			return "", ErrInvalidAnswer
		}
		return letter, nil
	case model.QuestionTypePK:
		letter := exam.Normalize(value)
		if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'E' {
			return "", ErrInvalidAnswer
		}
		return exam.ToggleChoice(current, letter), nil
	case model.QuestionTypeBS:
		code := exam.Normalize(value)
		if slot < 1 || slot > model.MaxStatements || (code != "B" && code != "S") {
			return "", ErrInvalidAnswer
		}
		return exam.SetStatement(current, slot, rune(code[0])), nil
	case model.QuestionTypeST:
		code := exam.Normalize(value)
		if slot < 1 || slot > model.MaxStatements || (code != "S" && code != "T") {
			return "", ErrInvalidAnswer
		}
		return exam.SetStatement(current, slot, rune(code[0])), nil
	case model.QuestionTypeMJ:
		// Matching answers are opaque strings; uppercase and store.
		return exam.Normalize(value), nil
	case model.QuestionTypeUR:
		return value, nil
	default:
		return "", ErrInvalidAnswer
	}
}

// Finish grades a session and writes its result. It is idempotent: the
// first status transition wins, every later call returns the stored
// result. Used by the explicit confirm endpoint, the WebSocket stream
// and the deadline worker alike.
func (s *ExamFlowService) Finish(ctx context.Context, sessionID uuid.UUID) (*model.ExamResult, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	now := time.Now()
	won, err := s.sessionRepo.Finish(ctx, sessionID, now)
	if err != nil {
		return nil, fmt.Errorf("finish session: %w", err)
	}
	if !won {
		return s.resultRepo.GetBySession(ctx, sessionID)
	}

	answers, err := s.sessionAnswers(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	keys, err := s.answerKeys(ctx, session.SubjectID)
	if err != nil {
		return nil, err
	}

	summary := exam.Grade(answers, keys)

	participant, err := s.participantRepo.GetByID(ctx, session.ParticipantID)
	if err != nil {
		return nil, fmt.Errorf("get participant: %w", err)
	}
	subject, err := s.subjectRepo.GetByID(ctx, session.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}

	result := &model.ExamResult{
		SessionID:       session.ID,
		ParticipantID:   participant.ID,
		ParticipantName: participant.Name,
		AgendaID:        session.AgendaID,
		SubjectID:       subject.ID,
		SubjectName:     subject.Name,
		Answers:         answers,
		Correct:         summary.Correct,
		Wrong:           summary.Wrong,
		Score:           summary.Score,
		FinishedAt:      now,
	}
	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("write result: %w", err)
	}

	s.clearSessionState(ctx, sessionID)

	s.log.Info().
		Str("session_id", session.ID.String()).
		Str("participant", participant.Name).
		Int("score", summary.Score).
		Msg("Session finished")

	return result, nil
}

// FinishOwned is Finish with an ownership check, for participant-facing
// endpoints.
func (s *ExamFlowService) FinishOwned(ctx context.Context, participantID, sessionID uuid.UUID) (*model.ExamResult, error) {
	if _, err := s.ownedSession(ctx, participantID, sessionID); err != nil {
		return nil, err
	}
	return s.Finish(ctx, sessionID)
}

// SessionForParticipant loads a session and verifies ownership.
func (s *ExamFlowService) SessionForParticipant(ctx context.Context, participantID, sessionID uuid.UUID) (*model.ExamSession, error) {
	return s.ownedSession(ctx, participantID, sessionID)
}

func (s *ExamFlowService) ownedSession(ctx context.Context, participantID, sessionID uuid.UUID) (*model.ExamSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.ParticipantID != participantID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

// sessionAnswers merges the persisted answers with the fresher Redis
// autosave hash. Redis wins on conflict.
func (s *ExamFlowService) sessionAnswers(ctx context.Context, sessionID uuid.UUID) (map[string]string, error) {
	answers, err := s.sessionRepo.AnswersBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load persisted answers: %w", err)
	}

	cached, err := s.rdb.HGetAll(ctx, config.CacheKey.SessionAnswersKey(sessionID.String())).Result()
	if err != nil {
		return nil, fmt.Errorf("load autosaved answers: %w", err)
	}
	for questionID, value := range cached {
		answers[questionID] = value
	}
	return answers, nil
}

// answerKeys loads the grading keys for a subject, with a short-lived
// Redis cache in front of PostgreSQL.
func (s *ExamFlowService) answerKeys(ctx context.Context, subjectID uuid.UUID) (map[string]string, error) {
	cacheKey := config.CacheKey.SubjectAnswerKeysKey(subjectID.String())

	cached, err := s.rdb.Get(ctx, cacheKey).Result()
	if err == nil && cached != "" {
		keys := make(map[string]string)
		if err := json.Unmarshal([]byte(cached), &keys); err == nil {
			return keys, nil
		}
	}

	keys, err := s.questionRepo.AnswerKeysBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("load answer keys: %w", err)
	}

	if raw, err := json.Marshal(keys); err == nil {
		_ = s.rdb.Set(ctx, cacheKey, raw, answerKeysTTL).Err()
	}
	return keys, nil
}

func (s *ExamFlowService) clearSessionState(ctx context.Context, sessionID uuid.UUID) {
	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, config.CacheKey.SessionAnswersKey(sessionID.String()))
	pipe.ZRem(ctx, config.CacheKey.SessionDeadlineIndex(), sessionID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID.String()).Msg("Failed to clear session state")
	}
}
