package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/garudacbt/cbt-backend/internal/model"
	"github.com/garudacbt/cbt-backend/internal/repository"
	"github.com/garudacbt/cbt-backend/internal/response"
	"github.com/garudacbt/cbt-backend/internal/service"
	"github.com/garudacbt/cbt-backend/internal/spreadsheet"
	"github.com/garudacbt/cbt-backend/internal/validator"
)

// ParticipantHandler handles admin-facing participant management.
type ParticipantHandler struct {
	participantService *service.ParticipantService
}

// NewParticipantHandler creates a new ParticipantHandler.
func NewParticipantHandler(participantService *service.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService}
}

// ListParticipants godoc
// GET /api/v1/admin/participants
// Lists participants with pagination.
func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	participants, pagination, err := h.participantService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"participants": participants}, pagination)
}

// GetParticipant godoc
// GET /api/v1/admin/participants/:id
func (h *ParticipantHandler) GetParticipant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	participant, err := h.participantService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"participant": participant})
}

// CreateParticipant godoc
// POST /api/v1/admin/participants
func (h *ParticipantHandler) CreateParticipant(c *gin.Context) {
	var req model.CreateParticipantRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	participant, err := h.participantService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"participant": participant})
}

// UpdateParticipant godoc
// PUT /api/v1/admin/participants/:id
// The password is only changed when the request sets one.
func (h *ParticipantHandler) UpdateParticipant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateParticipantRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	participant, err := h.participantService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, repository.ErrDuplicateUsername):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"participant": participant})
}

// DeleteParticipant godoc
// DELETE /api/v1/admin/participants/:id
func (h *ParticipantHandler) DeleteParticipant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.participantService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "participant deleted successfully"})
}

// DeleteAllParticipants godoc
// DELETE /api/v1/admin/participants
// Removes every participant, one delete per record. Failures do not
// stop the rest; the counts report what happened.
func (h *ParticipantHandler) DeleteAllParticipants(c *gin.Context) {
	deleted, failed, err := h.participantService.DeleteAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": deleted, "failed": failed})
}

// ImportParticipants godoc
// POST /api/v1/admin/participants/import
// Bulk-creates participants from an uploaded xlsx file. Rejected rows
// are counted and skipped.
func (h *ParticipantHandler) ImportParticipants(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	records, err := spreadsheet.Read(file)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrSpreadsheetFormat)
		return
	}

	imported, failed := h.participantService.Import(c.Request.Context(), records)
	response.Success(c, http.StatusOK, gin.H{"imported": imported, "failed": failed})
}

// ExportParticipants godoc
// GET /api/v1/admin/participants/export
// Streams every participant as an xlsx download. Password hashes are
// never exported.
func (h *ParticipantHandler) ExportParticipants(c *gin.Context) {
	headers, records, err := h.participantService.Export(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	var buf bytes.Buffer
	if err := spreadsheet.Write(&buf, headers, records); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	filename := "peserta_" + time.Now().Format("20060102_150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
