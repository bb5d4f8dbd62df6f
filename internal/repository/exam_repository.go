package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepzone/prepzone-backend/internal/model"
)

// ExamRepository handles exam data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

const examColumns = `id, title, category, sub_category, sections, duration_minutes,
	negative_mark, overall_cutoff, is_free, status, scheduled_start, scheduled_end,
	author_id, created_at, updated_at`

func scanExam(row interface{ Scan(...any) error }) (*model.Exam, error) {
	e := &model.Exam{}
	var sectionsJSON []byte
	err := row.Scan(&e.ID, &e.Title, &e.Category, &e.SubCategory, &sectionsJSON,
		&e.DurationMinutes, &e.NegativeMark, &e.OverallCutoff, &e.IsFree, &e.Status,
		&e.ScheduledStart, &e.ScheduledEnd, &e.AuthorID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sectionsJSON, &e.Sections); err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}
	return e, nil
}

// GetByID retrieves an exam by its UUID.
func (r *ExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = $1`, id)
	return scanExam(row)
}

// Create inserts a new exam.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	sectionsJSON, err := json.Marshal(e.Sections)
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO exams (title, category, sub_category, sections, duration_minutes,
		                    negative_mark, overall_cutoff, is_free, status,
		                    scheduled_start, scheduled_end, author_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		e.Title, e.Category, e.SubCategory, sectionsJSON, e.DurationMinutes,
		e.NegativeMark, e.OverallCutoff, e.IsFree, e.Status,
		e.ScheduledStart, e.ScheduledEnd, e.AuthorID,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// Update persists mutable exam fields.
func (r *ExamRepository) Update(ctx context.Context, e *model.Exam) error {
	sectionsJSON, err := json.Marshal(e.Sections)
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`UPDATE exams SET title = $1, category = $2, sub_category = $3, sections = $4,
		        duration_minutes = $5, negative_mark = $6, overall_cutoff = $7,
		        is_free = $8, scheduled_start = $9, scheduled_end = $10, updated_at = NOW()
		 WHERE id = $11`,
		e.Title, e.Category, e.SubCategory, sectionsJSON, e.DurationMinutes,
		e.NegativeMark, e.OverallCutoff, e.IsFree, e.ScheduledStart, e.ScheduledEnd, e.ID)
	return err
}

// UpdateStatus updates an exam's status.
func (r *ExamRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ExamStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exams SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	return err
}

// Delete removes a draft exam and its questions (cascade).
func (r *ExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	return err
}

// ListPublished returns published exams, optionally filtered by category.
// Pass empty strings to skip a filter.
func (r *ExamRepository) ListPublished(ctx context.Context, category, subCategory string) ([]model.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams WHERE status = $1`
	args := []interface{}{model.ExamStatusPublished}

	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if subCategory != "" {
		args = append(args, subCategory)
		query += fmt.Sprintf(` AND sub_category = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, *e)
	}
	return exams, rows.Err()
}

// ListPaginated retrieves all exams with pagination, newest first.
// Used by the admin dashboard.
func (r *ExamRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Exam, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM exams`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+examColumns+` FROM exams ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, 0, err
		}
		exams = append(exams, *e)
	}
	return exams, total, rows.Err()
}

// ListCategories returns the distinct categories of published exams with
// their exam counts.
func (r *ExamRepository) ListCategories(ctx context.Context) ([]model.CategorySummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT category, COUNT(*) FROM exams
		 WHERE status = $1 GROUP BY category ORDER BY category`,
		model.ExamStatusPublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []model.CategorySummary
	for rows.Next() {
		var c model.CategorySummary
		if err := rows.Scan(&c.Category, &c.ExamCount); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}
