package model

import (
	"time"

	"github.com/google/uuid"
)

// DashboardSummary is the headline block of the admin dashboard.
type DashboardSummary struct {
	TotalStudents  int `json:"total_students"`
	TotalExams     int `json:"total_exams"`
	PublishedExams int `json:"published_exams"`
	TotalResults   int `json:"total_results"`
}

// ExamActivity is one row of the recent-exams dashboard listing.
type ExamActivity struct {
	ExamID       uuid.UUID `json:"exam_id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Status       string    `json:"status"`
	ResultCount  int       `json:"result_count"`
	AverageScore float64   `json:"average_score"`
	CreatedAt    time.Time `json:"created_at"`
}

// CategoryActivity aggregates result volume per exam category.
type CategoryActivity struct {
	Category    string  `json:"category"`
	ResultCount int     `json:"result_count"`
	AvgAccuracy float64 `json:"avg_accuracy"`
}
