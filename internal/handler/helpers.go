package handler

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prepzone/prepzone-backend/internal/response"
)

// pageParams reads ?page and ?per_page with sane defaults.
func pageParams(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}

// buildPagination assembles the pagination block from a total count.
func buildPagination(page, perPage, total int) *response.Pagination {
	return &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(perPage))),
	}
}
