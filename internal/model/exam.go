package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamStatus enumerates the possible states of an exam.
type ExamStatus string

const (
	ExamStatusDraft     ExamStatus = "DRAFT"
	ExamStatusPublished ExamStatus = "PUBLISHED"
	ExamStatusArchived  ExamStatus = "ARCHIVED"
)

// Section is a named subset of an exam's questions sharing a marks policy
// and an optional pass threshold.
type Section struct {
	Name             string   `json:"name" binding:"required,min=1,max=100"`
	QuestionCount    int      `json:"question_count" binding:"required,min=1"`
	MarksPerQuestion float64  `json:"marks_per_question" binding:"required,gt=0"`
	Cutoff           *float64 `json:"cutoff,omitempty" binding:"omitempty,min=0"`
}

// Exam represents a mock exam definition.
type Exam struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Category        string     `json:"category"`
	SubCategory     string     `json:"sub_category,omitempty"`
	Sections        []Section  `json:"sections"`
	DurationMinutes int        `json:"duration_minutes"`
	NegativeMark    float64    `json:"negative_mark"`
	OverallCutoff   *float64   `json:"overall_cutoff,omitempty"`
	IsFree          bool       `json:"is_free"`
	Status          ExamStatus `json:"status"`
	ScheduledStart  *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd    *time.Time `json:"scheduled_end,omitempty"`
	AuthorID        int        `json:"author_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TotalQuestionCount returns the declared question count across sections.
func (e *Exam) TotalQuestionCount() int {
	total := 0
	for _, s := range e.Sections {
		total += s.QuestionCount
	}
	return total
}

// SectionByName returns the section with the given name, or nil.
func (e *Exam) SectionByName(name string) *Section {
	for i := range e.Sections {
		if e.Sections[i].Name == name {
			return &e.Sections[i]
		}
	}
	return nil
}

// CreateExamRequest is the payload for creating a new exam.
type CreateExamRequest struct {
	Title           string     `json:"title" binding:"required,min=3,max=255"`
	Category        string     `json:"category" binding:"required,min=2,max=100"`
	SubCategory     string     `json:"sub_category" binding:"omitempty,max=100"`
	Sections        []Section  `json:"sections" binding:"required,min=1,dive"`
	DurationMinutes int        `json:"duration_minutes" binding:"required,min=1,max=480"`
	NegativeMark    float64    `json:"negative_mark" binding:"min=0"`
	OverallCutoff   *float64   `json:"overall_cutoff" binding:"omitempty,min=0"`
	IsFree          bool       `json:"is_free"`
	ScheduledStart  *time.Time `json:"scheduled_start" binding:"omitempty"`
	ScheduledEnd    *time.Time `json:"scheduled_end" binding:"omitempty,gtfield=ScheduledStart"`
}

// UpdateExamRequest is the payload for updating an existing draft exam.
type UpdateExamRequest struct {
	Title           string     `json:"title" binding:"omitempty,min=3,max=255"`
	Category        string     `json:"category" binding:"omitempty,min=2,max=100"`
	SubCategory     *string    `json:"sub_category" binding:"omitempty,max=100"`
	Sections        []Section  `json:"sections" binding:"omitempty,min=1,dive"`
	DurationMinutes int        `json:"duration_minutes" binding:"omitempty,min=1,max=480"`
	NegativeMark    *float64   `json:"negative_mark" binding:"omitempty,min=0"`
	OverallCutoff   *float64   `json:"overall_cutoff" binding:"omitempty,min=0"`
	IsFree          *bool      `json:"is_free" binding:"omitempty"`
	ScheduledStart  *time.Time `json:"scheduled_start" binding:"omitempty"`
	ScheduledEnd    *time.Time `json:"scheduled_end" binding:"omitempty,gtfield=ScheduledStart"`
}

// CategorySummary is one row of the public category catalog.
type CategorySummary struct {
	Category  string `json:"category"`
	ExamCount int    `json:"exam_count"`
}

// ExamPayload is the Redis-cached payload sent to learners (no correct answers).
type ExamPayload struct {
	ExamID       uuid.UUID            `json:"exam_id"`
	Title        string               `json:"title"`
	Category     string               `json:"category"`
	Sections     []Section            `json:"sections"`
	Duration     int                  `json:"duration_minutes"`
	NegativeMark float64              `json:"negative_mark"`
	Questions    []QuestionForStudent `json:"questions"`
}
