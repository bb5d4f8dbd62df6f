package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prepzone/prepzone-backend/internal/config"
	"github.com/prepzone/prepzone-backend/internal/model"
	"github.com/prepzone/prepzone-backend/internal/repository"
	"github.com/prepzone/prepzone-backend/internal/scoring"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// LeaderboardService serves ranked standings and category statistics.
// Rankings are projections over the result store, cached in Redis and
// recomputed by the leaderboard worker after each submission.
type LeaderboardService struct {
	resultRepo *repository.ResultRepository
	userRepo   *repository.UserRepository
	rdb        *redis.Client
	cacheTTL   time.Duration
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(resultRepo *repository.ResultRepository, userRepo *repository.UserRepository, rdb *redis.Client, cacheTTL time.Duration) *LeaderboardService {
	return &LeaderboardService{resultRepo: resultRepo, userRepo: userRepo, rdb: rdb, cacheTTL: cacheTTL}
}

// GetGlobal returns the global leaderboard, top `limit` entries.
func (s *LeaderboardService) GetGlobal(ctx context.Context, limit int) ([]scoring.LeaderboardEntry, error) {
	return s.get(ctx, config.CacheKey.LeaderboardKey(), func(ctx context.Context) ([]model.ExamResult, error) {
		return s.resultRepo.ListAll(ctx)
	}, limit)
}

// GetByCategory returns the leaderboard restricted to one exam category.
func (s *LeaderboardService) GetByCategory(ctx context.Context, category string, limit int) ([]scoring.LeaderboardEntry, error) {
	return s.get(ctx, config.CacheKey.CategoryLeaderboardKey(category), func(ctx context.Context) ([]model.ExamResult, error) {
		return s.resultRepo.ListByCategory(ctx, category)
	}, limit)
}

// GetCategoryStats returns aggregate statistics for one category.
func (s *LeaderboardService) GetCategoryStats(ctx context.Context, category string) (*scoring.CategoryStats, error) {
	results, err := s.resultRepo.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	stats := scoring.ComputeCategoryStats(results, category)
	return &stats, nil
}

// Recompute rebuilds a leaderboard cache entry from the result store.
// Pass an empty category for the global board. Called by the worker.
func (s *LeaderboardService) Recompute(ctx context.Context, category string) error {
	var (
		key     string
		results []model.ExamResult
		err     error
	)
	if category == "" {
		key = config.CacheKey.LeaderboardKey()
		results, err = s.resultRepo.ListAll(ctx)
	} else {
		key = config.CacheKey.CategoryLeaderboardKey(category)
		results, err = s.resultRepo.ListByCategory(ctx, category)
	}
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}

	entries, err := s.enrich(ctx, scoring.Leaderboard(results))
	if err != nil {
		return err
	}
	return s.store(ctx, key, entries)
}

func (s *LeaderboardService) get(ctx context.Context, key string, load func(context.Context) ([]model.ExamResult, error), limit int) ([]scoring.LeaderboardEntry, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}

	if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var entries []scoring.LeaderboardEntry
		if err := json.Unmarshal(data, &entries); err == nil {
			return truncate(entries, limit), nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("key", key).Msg("leaderboard cache read failed")
	}

	results, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	entries, err := s.enrich(ctx, scoring.Leaderboard(results))
	if err != nil {
		return nil, err
	}
	if err := s.store(ctx, key, entries); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("leaderboard cache write failed")
	}
	return truncate(entries, limit), nil
}

// enrich fills in display names and avatars, which the result store does
// not denormalize.
func (s *LeaderboardService) enrich(ctx context.Context, entries []scoring.LeaderboardEntry) ([]scoring.LeaderboardEntry, error) {
	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.UserID)
	}
	users, err := s.userRepo.GetNamesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve user names: %w", err)
	}
	for i := range entries {
		if u, ok := users[entries[i].UserID]; ok {
			entries[i].Name = u.Name
			entries[i].AvatarURL = u.AvatarURL
		}
	}
	return entries, nil
}

func (s *LeaderboardService) store(ctx context.Context, key string, entries []scoring.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	return s.rdb.Set(ctx, key, data, s.cacheTTL).Err()
}

func truncate(entries []scoring.LeaderboardEntry, limit int) []scoring.LeaderboardEntry {
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
