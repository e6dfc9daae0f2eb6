package handler

import (
	"errors"
	"net/http"

	"github.com/garudacbt/cbt-backend/internal/middleware"
	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/garudacbt/cbt-backend/internal/response"
	"github.com/garudacbt/cbt-backend/internal/service"
	"github.com/garudacbt/cbt-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ExamPortalHandler handles participant-facing exam endpoints: the
// agenda list, the token gate and the session lifecycle.
type ExamPortalHandler struct {
	flowService *service.ExamFlowService
}

// NewExamPortalHandler creates a new ExamPortalHandler.
func NewExamPortalHandler(flowService *service.ExamFlowService) *ExamPortalHandler {
	return &ExamPortalHandler{flowService: flowService}
}

// failExamFlow maps the exam flow sentinel errors onto API error codes.
func failExamFlow(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrAgendaNotActive):
		response.Fail(c, http.StatusBadRequest, response.ErrAgendaNotActive)
	case errors.Is(err, service.ErrInvalidExamToken):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidExamToken)
	case errors.Is(err, service.ErrSubjectNotActive):
		response.Fail(c, http.StatusBadRequest, response.ErrSubjectNotActive)
	case errors.Is(err, service.ErrNoQuestions):
		response.Fail(c, http.StatusConflict, response.ErrNoQuestions)
	case errors.Is(err, service.ErrSessionFinished):
		response.Fail(c, http.StatusConflict, response.ErrSessionFinished)
	case errors.Is(err, service.ErrNotSessionOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotSessionOwner)
	case errors.Is(err, service.ErrUnknownQuestion):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownQuestion)
	case errors.Is(err, service.ErrInvalidAnswer):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidAnswer)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// ListAgendas godoc
// GET /api/v1/exam/agendas
// Returns agendas whose window covers now, without their tokens.
func (h *ExamPortalHandler) ListAgendas(c *gin.Context) {
	agendas, err := h.flowService.ListActiveAgendas(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"agendas": agendas})
}

// UnlockAgenda godoc
// POST /api/v1/exam/agendas/:agenda_id/unlock
// Validates the agenda token and returns the active subjects behind it.
// A wrong token changes no state; the participant may simply retry.
func (h *ExamPortalHandler) UnlockAgenda(c *gin.Context) {
	agendaID, err := uuid.Parse(c.Param("agenda_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UnlockAgendaRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	subjects, err := h.flowService.Unlock(c.Request.Context(), agendaID, req.Token)
	if err != nil {
		failExamFlow(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"subjects": subjects})
}

// StartSubject godoc
// POST /api/v1/exam/subjects/:subject_id/start
// Creates a fresh session for the subject and returns the paper. Every
// start is a new attempt with a full countdown.
func (h *ExamPortalHandler) StartSubject(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	subjectID, err := uuid.Parse(c.Param("subject_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.StartSubjectRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	paper, err := h.flowService.StartSubject(c.Request.Context(), claims.UserID, subjectID, req.Token)
	if err != nil {
		failExamFlow(c, err)
		return
	}

	response.Success(c, http.StatusCreated, paper)
}

// GetSessionState godoc
// GET /api/v1/exam/sessions/:session_id/state
// Returns the remaining time and autosaved answers, so a page reload
// inside one attempt does not lose progress.
func (h *ExamPortalHandler) GetSessionState(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	state, err := h.flowService.GetState(c.Request.Context(), claims.UserID, sessionID)
	if err != nil {
		failExamFlow(c, err)
		return
	}

	response.Success(c, http.StatusOK, state)
}

// SubmitAnswer godoc
// POST /api/v1/exam/sessions/:session_id/answers
// Applies the type-specific encoding for one question and autosaves the
// result. The HTTP route mirrors the WebSocket answer action for
// clients without a stream.
func (h *ExamPortalHandler) SubmitAnswer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	stored, err := h.flowService.SubmitAnswer(c.Request.Context(), claims.UserID, sessionID, &req)
	if err != nil {
		failExamFlow(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"question_id": req.QuestionID,
		"value":       stored,
	})
}

// FinishSession godoc
// POST /api/v1/exam/sessions/:session_id/finish
// Grades the session and returns the result. Finishing is idempotent:
// calling it again returns the stored result unchanged.
func (h *ExamPortalHandler) FinishSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.flowService.FinishOwned(c.Request.Context(), claims.UserID, sessionID)
	if err != nil {
		failExamFlow(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}
