package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prepzone/prepzone-backend/internal/ai"
	"github.com/prepzone/prepzone-backend/internal/config"
	"github.com/prepzone/prepzone-backend/internal/database"
	"github.com/prepzone/prepzone-backend/internal/handler"
	"github.com/prepzone/prepzone-backend/internal/logger"
	"github.com/prepzone/prepzone-backend/internal/repository"
	"github.com/prepzone/prepzone-backend/internal/router"
	"github.com/prepzone/prepzone-backend/internal/service"
	"github.com/prepzone/prepzone-backend/internal/validator"
	"github.com/prepzone/prepzone-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting PrepZone Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)
	resultRepo := repository.NewResultRepository(pool)
	dashRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo, authService)
	examService := service.NewExamService(examRepo, questionRepo, rdb)
	questionService := service.NewQuestionService(questionRepo, examRepo)
	attemptService := service.NewAttemptService(attemptRepo, resultRepo, examService, questionRepo, rdb)
	resultService := service.NewResultService(resultRepo, attemptRepo, questionRepo)
	lbService := service.NewLeaderboardService(resultRepo, userRepo, rdb, cfg.LeaderboardTTL)
	dashService := service.NewDashboardService(dashRepo)

	aiClient := ai.New(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel)
	aiService := service.NewAIService(aiClient, resultRepo, attemptRepo, questionRepo, questionService)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(userService, authService),
		Catalog:     handler.NewCatalogHandler(examService),
		Attempt:     handler.NewAttemptHandler(attemptService),
		Result:      handler.NewResultHandler(resultService),
		Leaderboard: handler.NewLeaderboardHandler(lbService),
		AI:          handler.NewAIHandler(aiService),
		Exam:        handler.NewExamHandler(examService, resultService),
		Question:    handler.NewQuestionHandler(questionService),
		User:        handler.NewUserHandler(userService),
		Dashboard:   handler.NewDashboardHandler(dashService),
		WS:          handler.NewWSHandler(attemptService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	autosaveWorker := worker.NewAutosaveWorker(attemptRepo, rdb, log)
	lbWorker := worker.NewLeaderboardWorker(lbService, rdb, cfg.LeaderboardTTL, log)

	go autosaveWorker.Start(workerCtx)
	go lbWorker.Start(workerCtx)

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Load all published exams into Redis BEFORE accepting traffic so a
	// thundering herd never hits Postgres for payloads.
	if err := examService.PrewarmAllCaches(ctx); err != nil {
		log.Warn().Err(err).Msg("Cache prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.New(cfg, authService, handlers)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
