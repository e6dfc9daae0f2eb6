package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/garudacbt/cbt-backend/internal/response"
	"github.com/garudacbt/cbt-backend/internal/service"
	"github.com/garudacbt/cbt-backend/internal/validator"
)

// AgendaHandler handles admin-facing agenda management.
type AgendaHandler struct {
	agendaService *service.AgendaService
}

// NewAgendaHandler creates a new AgendaHandler.
func NewAgendaHandler(agendaService *service.AgendaService) *AgendaHandler {
	return &AgendaHandler{agendaService: agendaService}
}

// ListAgendas godoc
// GET /api/v1/admin/agendas
// Lists all agendas with their tokens, newest window first.
func (h *AgendaHandler) ListAgendas(c *gin.Context) {
	agendas, err := h.agendaService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"agendas": agendas})
}

// GetAgenda godoc
// GET /api/v1/admin/agendas/:id
func (h *AgendaHandler) GetAgenda(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	agenda, err := h.agendaService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"agenda": agenda})
}

// CreateAgenda godoc
// POST /api/v1/admin/agendas
// An omitted token gets a generated one.
func (h *AgendaHandler) CreateAgenda(c *gin.Context) {
	var req model.CreateAgendaRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	agenda, err := h.agendaService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"agenda": agenda})
}

// UpdateAgenda godoc
// PUT /api/v1/admin/agendas/:id
// An omitted token keeps the current one.
func (h *AgendaHandler) UpdateAgenda(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateAgendaRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	agenda, err := h.agendaService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"agenda": agenda})
}

// DeleteAgenda godoc
// DELETE /api/v1/admin/agendas/:id
func (h *AgendaHandler) DeleteAgenda(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.agendaService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "agenda deleted successfully"})
}
