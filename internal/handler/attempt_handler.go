package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prepzone/prepzone-backend/internal/middleware"
	"github.com/prepzone/prepzone-backend/internal/model"
	"github.com/prepzone/prepzone-backend/internal/response"
	"github.com/prepzone/prepzone-backend/internal/scoring"
	"github.com/prepzone/prepzone-backend/internal/service"
	"github.com/prepzone/prepzone-backend/internal/validator"
)

// AttemptHandler handles the learner's attempt lifecycle over HTTP.
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// Start godoc
// POST /api/v1/attempts/:exam_id/start
// Starts (or resumes) the user's attempt and returns the exam payload.
func (h *AttemptHandler) Start(c *gin.Context) {
	claims := middleware.GetClaims(c)
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	payload, state, err := h.attemptService.Start(c.Request.Context(), claims.UserID, examID)
	if err != nil {
		failAttemptError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": payload, "state": state})
}

// GetState godoc
// GET /api/v1/attempts/:exam_id/state
// Returns autosaved answers and the remaining clock for a reconnect.
func (h *AttemptHandler) GetState(c *gin.Context) {
	claims := middleware.GetClaims(c)
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	state, err := h.attemptService.GetState(c.Request.Context(), claims.UserID, examID)
	if err != nil {
		failAttemptError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// Autosave godoc
// POST /api/v1/attempts/:exam_id/autosave
// Buffers one answer. HTTP fallback for clients without the socket.
func (h *AttemptHandler) Autosave(c *gin.Context) {
	claims := middleware.GetClaims(c)
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AutosaveRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.attemptService.Autosave(c.Request.Context(), claims.UserID, examID, &req); err != nil {
		failAttemptError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"saved": true})
}

// Submit godoc
// POST /api/v1/attempts/:exam_id/submit
// Grades the attempt and returns the persisted result.
func (h *AttemptHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SubmitAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.attemptService.Submit(c.Request.Context(), claims.UserID, examID, req.Answers)
	if err != nil {
		failAttemptError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// failAttemptError maps attempt service errors onto the response envelope.
func failAttemptError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrExamNotAvailable):
		response.Fail(c, http.StatusConflict, response.ErrExamNotAvailable)
	case errors.Is(err, service.ErrExamNotPublished):
		response.Fail(c, http.StatusConflict, response.ErrExamNotPublished)
	case errors.Is(err, service.ErrAttemptCompleted):
		response.Fail(c, http.StatusConflict, response.ErrAttemptCompleted)
	case errors.Is(err, service.ErrNoActiveAttempt):
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveAttempt)
	case errors.Is(err, scoring.ErrValidation):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
	case errors.Is(err, service.ErrPersistence):
		response.Fail(c, http.StatusInternalServerError, response.ErrPersistenceFailed)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
