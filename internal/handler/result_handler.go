package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prepzone/prepzone-backend/internal/middleware"
	"github.com/prepzone/prepzone-backend/internal/response"
	"github.com/prepzone/prepzone-backend/internal/service"
)

// ResultHandler serves result history, detail, and the plain-text export.
type ResultHandler struct {
	resultService *service.ResultService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultService *service.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// ListMine godoc
// GET /api/v1/results
// Returns the authenticated user's result history.
func (h *ResultHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)

	results, err := h.resultService.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// Get godoc
// GET /api/v1/results/:result_id
// Returns one result. Students can only read their own.
func (h *ResultHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resultID, err := uuid.Parse(c.Param("result_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.resultService.Get(c.Request.Context(), resultID, claims.UserID,
		claims.TokenType == service.TokenTypeAdmin)
	if err != nil {
		failResultError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// ExportText godoc
// GET /api/v1/results/:result_id/export
// Downloads the result as a plain-text report card.
func (h *ResultHandler) ExportText(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resultID, err := uuid.Parse(c.Param("result_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	text, err := h.resultService.ExportText(c.Request.Context(), resultID, claims.UserID,
		claims.TokenType == service.TokenTypeAdmin)
	if err != nil {
		failResultError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="result-%s.txt"`, resultID))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func failResultError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrResultForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
