package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepzone/prepzone-backend/internal/model"
)

// ResultRepository handles the append-only exam result store.
// Results are never updated or deleted once written.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

const resultColumns = `id, user_id, exam_id, exam_title, category, score, max_score,
	time_taken_seconds, total_questions, attempted, correct, incorrect, unanswered,
	accuracy, sections, qualified, submitted_at`

func scanResult(row interface{ Scan(...any) error }) (*model.ExamResult, error) {
	res := &model.ExamResult{}
	var sectionsJSON []byte
	err := row.Scan(&res.ID, &res.UserID, &res.ExamID, &res.ExamTitle, &res.Category,
		&res.Score, &res.MaxScore, &res.TimeTakenSecs, &res.TotalQuestions,
		&res.Attempted, &res.Correct, &res.Incorrect, &res.Unanswered,
		&res.Accuracy, &sectionsJSON, &res.Qualified, &res.SubmittedAt)
	if err != nil {
		return nil, err
	}
	if len(sectionsJSON) > 0 {
		if err := json.Unmarshal(sectionsJSON, &res.Sections); err != nil {
			return nil, fmt.Errorf("decode sections: %w", err)
		}
	}
	return res, nil
}

// Create appends a new result row.
func (r *ResultRepository) Create(ctx context.Context, res *model.ExamResult) error {
	sectionsJSON, err := json.Marshal(res.Sections)
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO exam_results (user_id, exam_id, exam_title, category, score,
		                           max_score, time_taken_seconds, total_questions,
		                           attempted, correct, incorrect, unanswered,
		                           accuracy, sections, qualified)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id, submitted_at`,
		res.UserID, res.ExamID, res.ExamTitle, res.Category, res.Score,
		res.MaxScore, res.TimeTakenSecs, res.TotalQuestions,
		res.Attempted, res.Correct, res.Incorrect, res.Unanswered,
		res.Accuracy, sectionsJSON, res.Qualified,
	).Scan(&res.ID, &res.SubmittedAt)
}

// GetByID retrieves a result by its UUID.
func (r *ResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ExamResult, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM exam_results WHERE id = $1`, id)
	return scanResult(row)
}

// ListByUser retrieves a user's results, newest first.
func (r *ResultRepository) ListByUser(ctx context.Context, userID int) ([]model.ExamResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+resultColumns+` FROM exam_results
		 WHERE user_id = $1 ORDER BY submitted_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResults(rows)
}

// ListByExamPaginated retrieves results for one exam, best score first.
func (r *ResultRepository) ListByExamPaginated(ctx context.Context, examID uuid.UUID, limit, offset int) ([]model.ExamResult, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exam_results WHERE exam_id = $1`, examID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+resultColumns+` FROM exam_results
		 WHERE exam_id = $1 ORDER BY score DESC, submitted_at LIMIT $2 OFFSET $3`,
		examID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	results, err := collectResults(rows)
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// ListAll retrieves every result. Used to recompute leaderboard projections.
func (r *ResultRepository) ListAll(ctx context.Context) ([]model.ExamResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+resultColumns+` FROM exam_results ORDER BY submitted_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResults(rows)
}

// ListByCategory retrieves all results for one category.
func (r *ResultRepository) ListByCategory(ctx context.Context, category string) ([]model.ExamResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+resultColumns+` FROM exam_results
		 WHERE category = $1 ORDER BY submitted_at`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResults(rows)
}

func collectResults(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]model.ExamResult, error) {
	var results []model.ExamResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, rows.Err()
}
