package model

import "github.com/google/uuid"

// PersistAnswerJob is the payload pushed to the persist-answers queue when a
// learner autosaves. A background worker flushes it to Postgres.
type PersistAnswerJob struct {
	AttemptID  uuid.UUID `json:"attempt_id"`
	QuestionID string    `json:"question_id"`
	Answer     Answer    `json:"answer"`
}

// LeaderboardRefreshJob asks the leaderboard worker to recompute projections.
// Category is empty for a global-only refresh.
type LeaderboardRefreshJob struct {
	Category string `json:"category"`
}
