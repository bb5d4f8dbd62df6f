package model

import (
	"time"

	"github.com/google/uuid"
)

// AttemptStatus enumerates attempt states.
type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "IN_PROGRESS"
	AttemptStatusCompleted  AttemptStatus = "COMPLETED"
)

// Attempt represents a learner's run through one exam. Answer state lives
// client-side (mirrored into Redis by autosave); the row tracks lifecycle.
type Attempt struct {
	ID         uuid.UUID     `json:"id"`
	ExamID     uuid.UUID     `json:"exam_id"`
	UserID     int           `json:"user_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
	Status     AttemptStatus `json:"status"`
	ResultID   *uuid.UUID    `json:"result_id,omitempty"`
}

// Answer is a learner's response to one question. Standard questions carry
// Selected; reading-comprehension questions carry Sub keyed by sub-question
// id. Exactly one of the two is set.
type Answer struct {
	Selected *int           `json:"selected,omitempty"`
	Sub      map[string]int `json:"sub,omitempty"`
}

// AnswerMap maps question id → the learner's answer. A missing key means
// the question was left unanswered.
type AnswerMap map[string]Answer

// AttemptState is what a reconnecting client needs to resume an attempt.
type AttemptState struct {
	ExamID           uuid.UUID `json:"exam_id"`
	UserID           int       `json:"user_id"`
	AutosavedAnswers AnswerMap `json:"autosaved_answers"`
	RemainingSeconds float64   `json:"remaining_seconds"`
}

// SubmitAttemptRequest is the payload for submitting a finished attempt.
// Empty answers are allowed: a timeout-triggered submit grades whatever was
// autosaved.
type SubmitAttemptRequest struct {
	Answers AnswerMap `json:"answers"`
}

// AutosaveRequest is the payload for saving a single in-progress answer.
type AutosaveRequest struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
	Answer     Answer `json:"answer" binding:"required"`
}
