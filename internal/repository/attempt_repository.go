package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepzone/prepzone-backend/internal/model"
)

// AttemptRepository handles attempt lifecycle rows and autosaved answers.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// Create inserts a new in-progress attempt. A user gets at most one attempt
// per exam; an existing row wins over the insert.
func (r *AttemptRepository) Create(ctx context.Context, a *model.Attempt) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO attempts (exam_id, user_id, started_at, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (exam_id, user_id) DO UPDATE SET exam_id = EXCLUDED.exam_id
		 RETURNING id, started_at, status`,
		a.ExamID, a.UserID, a.StartedAt, a.Status,
	).Scan(&a.ID, &a.StartedAt, &a.Status)
}

// GetByExamAndUser retrieves a user's attempt for an exam.
func (r *AttemptRepository) GetByExamAndUser(ctx context.Context, examID uuid.UUID, userID int) (*model.Attempt, error) {
	a := &model.Attempt{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, exam_id, user_id, started_at, finished_at, status, result_id
		 FROM attempts WHERE exam_id = $1 AND user_id = $2`,
		examID, userID,
	).Scan(&a.ID, &a.ExamID, &a.UserID, &a.StartedAt, &a.FinishedAt, &a.Status, &a.ResultID)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Complete marks an attempt finished and links its result.
func (r *AttemptRepository) Complete(ctx context.Context, attemptID, resultID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE attempts SET status = $1, finished_at = NOW(), result_id = $2
		 WHERE id = $3`,
		model.AttemptStatusCompleted, resultID, attemptID)
	return err
}

// SaveAnswer upserts a single autosaved answer for an attempt.
// Called by the background persistence worker, not the request path.
func (r *AttemptRepository) SaveAnswer(ctx context.Context, attemptID uuid.UUID, questionID string, answer model.Answer) error {
	answerJSON, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("encode answer: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO attempt_answers (attempt_id, question_id, answer, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (attempt_id, question_id)
		 DO UPDATE SET answer = EXCLUDED.answer, updated_at = NOW()`,
		attemptID, questionID, answerJSON)
	return err
}

// MapAnswers loads all persisted answers for an attempt keyed by question id.
func (r *AttemptRepository) MapAnswers(ctx context.Context, attemptID uuid.UUID) (model.AnswerMap, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT question_id, answer FROM attempt_answers WHERE attempt_id = $1`,
		attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := make(model.AnswerMap)
	for rows.Next() {
		var questionID string
		var answerJSON []byte
		if err := rows.Scan(&questionID, &answerJSON); err != nil {
			return nil, err
		}
		var a model.Answer
		if err := json.Unmarshal(answerJSON, &a); err != nil {
			return nil, fmt.Errorf("decode answer for question %s: %w", questionID, err)
		}
		answers[questionID] = a
	}
	return answers, rows.Err()
}
