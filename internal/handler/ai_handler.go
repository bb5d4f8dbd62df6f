package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prepzone/prepzone-backend/internal/ai"
	"github.com/prepzone/prepzone-backend/internal/middleware"
	"github.com/prepzone/prepzone-backend/internal/response"
	"github.com/prepzone/prepzone-backend/internal/service"
	"github.com/prepzone/prepzone-backend/internal/validator"
)

// AIHandler exposes the three AI flows: result analysis for students,
// question generation and parsing for admins.
type AIHandler struct {
	aiService *service.AIService
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(aiService *service.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

// AnalyzeResult godoc
// POST /api/v1/results/:result_id/analyze
// Returns AI study advice for one of the user's results.
func (h *AIHandler) AnalyzeResult(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resultID, err := uuid.Parse(c.Param("result_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	analysis, err := h.aiService.AnalyzeResult(c.Request.Context(), resultID, claims.UserID,
		claims.TokenType == service.TokenTypeAdmin)
	if err != nil {
		failAIError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"analysis": analysis})
}

// GenerateQuestions godoc
// POST /api/v1/admin/exams/:exam_id/ai/generate
// Generates questions for one section of a draft exam and appends them.
func (h *AIHandler) GenerateQuestions(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req service.GenerateQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions, err := h.aiService.GenerateQuestions(c.Request.Context(), examID, &req)
	if err != nil {
		failAIError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"questions": questions})
}

// ParseQuestion godoc
// POST /api/v1/admin/ai/parse-question
// Structures free-form question text without persisting it.
func (h *AIHandler) ParseQuestion(c *gin.Context) {
	var req service.ParseQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.aiService.ParseQuestion(c.Request.Context(), &req)
	if err != nil {
		failAIError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

func failAIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrResultForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrExamNotDraft):
		response.Fail(c, http.StatusConflict, response.ErrExamNotDraft)
	case errors.Is(err, service.ErrSectionMismatch):
		response.Fail(c, http.StatusBadRequest, response.ErrSectionMismatch)
	case errors.Is(err, ai.ErrGenerationFailed):
		response.Fail(c, http.StatusBadGateway, response.ErrAIGeneration)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
