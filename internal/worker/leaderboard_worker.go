package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prepzone/prepzone-backend/internal/config"
	"github.com/prepzone/prepzone-backend/internal/model"
	"github.com/prepzone/prepzone-backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// LeaderboardWorker keeps the cached leaderboard projections fresh. It
// reacts to refresh jobs queued on submission and also recomputes on a
// fixed interval so the cache survives missed jobs.
type LeaderboardWorker struct {
	lbSvc    *service.LeaderboardService
	rdb      *redis.Client
	interval time.Duration
	log      zerolog.Logger
}

// NewLeaderboardWorker creates a new LeaderboardWorker.
func NewLeaderboardWorker(lbSvc *service.LeaderboardService, rdb *redis.Client, interval time.Duration, log zerolog.Logger) *LeaderboardWorker {
	return &LeaderboardWorker{
		lbSvc:    lbSvc,
		rdb:      rdb,
		interval: interval,
		log:      log.With().Str("component", "leaderboard_worker").Logger(),
	}
}

// Start begins the worker loop. Call in a goroutine; cancel the context to stop.
func (w *LeaderboardWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx, "")
		default:
			w.processNext(ctx)
		}
	}
}

func (w *LeaderboardWorker) processNext(ctx context.Context) {
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.LeaderboardRefreshQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}
	if len(result) < 2 {
		return
	}

	var job model.LeaderboardRefreshJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}

	// A submission invalidates both the global board and its category board.
	w.refresh(ctx, "")
	if job.Category != "" {
		w.refresh(ctx, job.Category)
	}
}

func (w *LeaderboardWorker) refresh(ctx context.Context, category string) {
	if err := w.lbSvc.Recompute(ctx, category); err != nil {
		w.log.Error().Err(err).Str("category", category).Msg("Recompute failed")
	}
}
