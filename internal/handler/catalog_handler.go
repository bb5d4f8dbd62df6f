package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prepzone/prepzone-backend/internal/model"
	"github.com/prepzone/prepzone-backend/internal/response"
	"github.com/prepzone/prepzone-backend/internal/service"
)

// CatalogHandler serves the public exam catalog.
type CatalogHandler struct {
	examService *service.ExamService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(examService *service.ExamService) *CatalogHandler {
	return &CatalogHandler{examService: examService}
}

// ListCategories godoc
// GET /api/v1/catalog/categories
// Lists published exam categories with counts.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	cats, err := h.examService.ListCategories(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": cats})
}

// ListExams godoc
// GET /api/v1/catalog/exams?category=&sub_category=
// Lists published exams, optionally filtered.
func (h *CatalogHandler) ListExams(c *gin.Context) {
	exams, err := h.examService.ListPublished(c.Request.Context(),
		c.Query("category"), c.Query("sub_category"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// GetExam godoc
// GET /api/v1/catalog/exams/:exam_id
// Returns one published exam's metadata (sections, duration, marking
// scheme), without questions.
func (h *CatalogHandler) GetExam(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.examService.Get(c.Request.Context(), examID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if exam.Status != model.ExamStatusPublished {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}
