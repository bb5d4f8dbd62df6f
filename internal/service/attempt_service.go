package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prepzone/prepzone-backend/internal/config"
	"github.com/prepzone/prepzone-backend/internal/model"
	"github.com/prepzone/prepzone-backend/internal/repository"
	"github.com/prepzone/prepzone-backend/internal/scoring"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Common attempt errors.
var (
	ErrExamNotAvailable = errors.New("exam is not available")
	ErrAttemptCompleted = errors.New("attempt already completed")
	ErrNoActiveAttempt  = errors.New("no active attempt")
	ErrPersistence      = errors.New("result persistence failed")
)

// AttemptService orchestrates the learner's attempt lifecycle: start,
// autosave, resume, and submit. Autosaves buffer in Redis and drain to
// Postgres through a background worker; grading and result persistence
// happen synchronously on submit.
type AttemptService struct {
	attemptRepo *repository.AttemptRepository
	resultRepo  *repository.ResultRepository
	examSvc     *ExamService
	qRepo       *repository.QuestionRepository
	rdb         *redis.Client
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	attemptRepo *repository.AttemptRepository,
	resultRepo *repository.ResultRepository,
	examSvc *ExamService,
	qRepo *repository.QuestionRepository,
	rdb *redis.Client,
) *AttemptService {
	return &AttemptService{
		attemptRepo: attemptRepo,
		resultRepo:  resultRepo,
		examSvc:     examSvc,
		qRepo:       qRepo,
		rdb:         rdb,
	}
}

// Start begins (or resumes) a user's attempt at a published exam. Starting
// is idempotent: a second call returns the existing attempt rather than
// resetting the clock.
func (s *AttemptService) Start(ctx context.Context, userID int, examID uuid.UUID) (*model.ExamPayload, *model.AttemptState, error) {
	exam, err := s.examSvc.Get(ctx, examID)
	if err != nil {
		return nil, nil, err
	}
	if err := checkAvailability(exam, time.Now()); err != nil {
		return nil, nil, err
	}

	attempt := &model.Attempt{
		ExamID:    examID,
		UserID:    userID,
		StartedAt: time.Now(),
		Status:    model.AttemptStatusInProgress,
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, nil, fmt.Errorf("create attempt: %w", err)
	}
	if attempt.Status == model.AttemptStatusCompleted {
		return nil, nil, ErrAttemptCompleted
	}

	payload, err := s.examSvc.GetCachedPayload(ctx, examID)
	if err != nil {
		return nil, nil, err
	}

	// Mirror the start time into Redis so remaining time can be computed
	// without touching Postgres on every poll.
	startKey := config.CacheKey.AttemptStartKey(userID, examID.String())
	ttl := time.Duration(exam.DurationMinutes+30) * time.Minute
	if err := s.rdb.Set(ctx, startKey, attempt.StartedAt.Format(time.RFC3339Nano), ttl).Err(); err != nil {
		log.Warn().Err(err).Int("user_id", userID).Msg("attempt start key write failed")
	}

	state, err := s.buildState(ctx, userID, exam, attempt)
	if err != nil {
		return nil, nil, err
	}
	return payload, state, nil
}

// GetState returns what a reconnecting client needs to resume: autosaved
// answers and the remaining clock.
func (s *AttemptService) GetState(ctx context.Context, userID int, examID uuid.UUID) (*model.AttemptState, error) {
	exam, err := s.examSvc.Get(ctx, examID)
	if err != nil {
		return nil, err
	}

	attempt, err := s.attemptRepo.GetByExamAndUser(ctx, examID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoActiveAttempt
		}
		return nil, err
	}
	if attempt.Status == model.AttemptStatusCompleted {
		return nil, ErrAttemptCompleted
	}

	return s.buildState(ctx, userID, exam, attempt)
}

// Autosave buffers one answer in Redis and queues it for database
// persistence. The request path never blocks on Postgres.
func (s *AttemptService) Autosave(ctx context.Context, userID int, examID uuid.UUID, req *model.AutosaveRequest) error {
	attempt, err := s.attemptRepo.GetByExamAndUser(ctx, examID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNoActiveAttempt
		}
		return err
	}
	if attempt.Status == model.AttemptStatusCompleted {
		return ErrAttemptCompleted
	}

	answerJSON, err := json.Marshal(req.Answer)
	if err != nil {
		return fmt.Errorf("encode answer: %w", err)
	}

	answersKey := config.CacheKey.AttemptAnswersKey(userID, examID.String())
	if err := s.rdb.HSet(ctx, answersKey, req.QuestionID, answerJSON).Err(); err != nil {
		return fmt.Errorf("buffer answer: %w", err)
	}

	job, err := json.Marshal(model.PersistAnswerJob{
		AttemptID:  attempt.ID,
		QuestionID: req.QuestionID,
		Answer:     req.Answer,
	})
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	return s.rdb.RPush(ctx, config.WorkerKey.PersistAnswersQueue, job).Err()
}

// Submit grades the attempt and synchronously persists the result. If the
// client sends no answers (e.g. a timeout-triggered submit), the autosaved
// answers are graded instead.
func (s *AttemptService) Submit(ctx context.Context, userID int, examID uuid.UUID, answers model.AnswerMap) (*model.ExamResult, error) {
	exam, err := s.examSvc.Get(ctx, examID)
	if err != nil {
		return nil, err
	}

	attempt, err := s.attemptRepo.GetByExamAndUser(ctx, examID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoActiveAttempt
		}
		return nil, err
	}
	if attempt.Status == model.AttemptStatusCompleted {
		return nil, ErrAttemptCompleted
	}

	if len(answers) == 0 {
		answers, err = s.loadAutosavedAnswers(ctx, userID, attempt)
		if err != nil {
			return nil, err
		}
	}

	questions, err := s.qRepo.ListByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	elapsed := int(time.Since(attempt.StartedAt).Seconds())
	if max := exam.DurationMinutes * 60; elapsed > max {
		elapsed = max
	}

	result, err := scoring.Score(exam, questions, answers, elapsed)
	if err != nil {
		return nil, err
	}
	result.UserID = userID

	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := s.attemptRepo.Complete(ctx, attempt.ID, result.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// The graded answers become the permanent record behind result exports.
	s.queueFinalAnswers(ctx, attempt.ID, answers)
	s.clearAttemptBuffers(ctx, userID, examID)
	s.queueLeaderboardRefresh(ctx, exam.Category)

	return result, nil
}

func (s *AttemptService) buildState(ctx context.Context, userID int, exam *model.Exam, attempt *model.Attempt) (*model.AttemptState, error) {
	answers, err := s.loadAutosavedAnswers(ctx, userID, attempt)
	if err != nil {
		return nil, err
	}

	startedAt := attempt.StartedAt
	startKey := config.CacheKey.AttemptStartKey(userID, exam.ID.String())
	if raw, err := s.rdb.Get(ctx, startKey).Result(); err == nil {
		if t, perr := time.Parse(time.RFC3339Nano, raw); perr == nil {
			startedAt = t
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Int("user_id", userID).Msg("attempt start key read failed")
	}

	remaining := float64(exam.DurationMinutes*60) - time.Since(startedAt).Seconds()
	if remaining < 0 {
		remaining = 0
	}

	return &model.AttemptState{
		ExamID:           exam.ID,
		UserID:           userID,
		AutosavedAnswers: answers,
		RemainingSeconds: remaining,
	}, nil
}

// loadAutosavedAnswers prefers the Redis buffer and falls back to the rows
// the persistence worker already flushed. The fallback covers Redis restarts
// mid-attempt.
func (s *AttemptService) loadAutosavedAnswers(ctx context.Context, userID int, attempt *model.Attempt) (model.AnswerMap, error) {
	answersKey := config.CacheKey.AttemptAnswersKey(userID, attempt.ExamID.String())
	raw, err := s.rdb.HGetAll(ctx, answersKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("read answer buffer: %w", err)
	}

	if len(raw) > 0 {
		answers := make(model.AnswerMap, len(raw))
		for qid, val := range raw {
			var a model.Answer
			if err := json.Unmarshal([]byte(val), &a); err != nil {
				return nil, fmt.Errorf("decode buffered answer for %s: %w", qid, err)
			}
			answers[qid] = a
		}
		return answers, nil
	}

	return s.attemptRepo.MapAnswers(ctx, attempt.ID)
}

func (s *AttemptService) clearAttemptBuffers(ctx context.Context, userID int, examID uuid.UUID) {
	keys := []string{
		config.CacheKey.AttemptStartKey(userID, examID.String()),
		config.CacheKey.AttemptAnswersKey(userID, examID.String()),
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Int("user_id", userID).Msg("attempt buffer cleanup failed")
	}
}

func (s *AttemptService) queueFinalAnswers(ctx context.Context, attemptID uuid.UUID, answers model.AnswerMap) {
	for qid, ans := range answers {
		job, err := json.Marshal(model.PersistAnswerJob{
			AttemptID:  attemptID,
			QuestionID: qid,
			Answer:     ans,
		})
		if err != nil {
			continue
		}
		if err := s.rdb.RPush(ctx, config.WorkerKey.PersistAnswersQueue, job).Err(); err != nil {
			log.Warn().Err(err).Str("attempt_id", attemptID.String()).Msg("final answer enqueue failed")
			return
		}
	}
}

func (s *AttemptService) queueLeaderboardRefresh(ctx context.Context, category string) {
	job, err := json.Marshal(model.LeaderboardRefreshJob{Category: category})
	if err != nil {
		return
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.LeaderboardRefreshQueue, job).Err(); err != nil {
		log.Warn().Err(err).Msg("leaderboard refresh enqueue failed")
	}
}

func checkAvailability(exam *model.Exam, now time.Time) error {
	if exam.Status != model.ExamStatusPublished {
		return ErrExamNotAvailable
	}
	if exam.ScheduledStart != nil && now.Before(*exam.ScheduledStart) {
		return ErrExamNotAvailable
	}
	if exam.ScheduledEnd != nil && now.After(*exam.ScheduledEnd) {
		return ErrExamNotAvailable
	}
	return nil
}
