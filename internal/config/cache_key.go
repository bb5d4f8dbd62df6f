package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's login session (single device).
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// AttemptStartKey returns the cache key for a user's attempt start time.
func (r *CacheKeyStruct) AttemptStartKey(userID int, examID string) string {
	return fmt.Sprintf("user:%d:exam:%s:attempt_start", userID, examID)
}

// AttemptAnswersKey returns the cache key for a user's autosaved answers.
func (r *CacheKeyStruct) AttemptAnswersKey(userID int, examID string) string {
	return fmt.Sprintf("user:%d:exam:%s:answers", userID, examID)
}

// ExamPayloadKey returns the cache key for an exam's student-facing payload.
func (r *CacheKeyStruct) ExamPayloadKey(examID string) string {
	return fmt.Sprintf("exam:%s:payload", examID)
}

// ExamDurationKey returns the cache key for an exam's duration in minutes.
func (r *CacheKeyStruct) ExamDurationKey(examID string) string {
	return fmt.Sprintf("exam:%s:duration", examID)
}

// LeaderboardKey returns the cache key for the global leaderboard projection.
func (r *CacheKeyStruct) LeaderboardKey() string {
	return "leaderboard:global"
}

// CategoryLeaderboardKey returns the cache key for a per-category leaderboard.
func (r *CacheKeyStruct) CategoryLeaderboardKey(category string) string {
	return fmt.Sprintf("leaderboard:category:%s", category)
}

var CacheKey = NewCacheKeyStruct()
