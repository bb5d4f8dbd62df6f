package model

import (
	"time"

	"github.com/google/uuid"
)

// SectionResult is the per-section breakdown inside an ExamResult.
type SectionResult struct {
	Name        string  `json:"name"`
	Attempted   int     `json:"attempted"`
	Correct     int     `json:"correct"`
	Incorrect   int     `json:"incorrect"`
	Unattempted int     `json:"unattempted"`
	Score       float64 `json:"score"`
	MaxScore    float64 `json:"max_score"`
	Accuracy    float64 `json:"accuracy"`
	Qualified   bool    `json:"qualified"`
}

// ExamResult is the immutable record produced when an attempt is submitted.
// It is written once and never updated; leaderboards and statistics are
// derived projections over the result set.
type ExamResult struct {
	ID             uuid.UUID       `json:"id"`
	UserID         int             `json:"user_id"`
	ExamID         uuid.UUID       `json:"exam_id"`
	ExamTitle      string          `json:"exam_title"`
	Category       string          `json:"category"`
	Score          float64         `json:"score"`
	MaxScore       float64         `json:"max_score"`
	TimeTakenSecs  int             `json:"time_taken_seconds"`
	TotalQuestions int             `json:"total_questions"`
	Attempted      int             `json:"attempted"`
	Correct        int             `json:"correct"`
	Incorrect      int             `json:"incorrect"`
	Unanswered     int             `json:"unanswered"`
	Accuracy       float64         `json:"accuracy"`
	Sections       []SectionResult `json:"sections,omitempty"`
	Qualified      bool            `json:"qualified"`
	SubmittedAt    time.Time       `json:"submitted_at"`
}
