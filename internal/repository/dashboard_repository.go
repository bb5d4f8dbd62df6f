package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepzone/prepzone-backend/internal/model"
)

// DashboardRepository runs the aggregate queries behind the admin dashboard.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummary returns platform-wide headline counts.
func (r *DashboardRepository) GetSummary(ctx context.Context) (*model.DashboardSummary, error) {
	s := &model.DashboardSummary{}
	err := r.pool.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM users WHERE role = 'STUDENT'),
		   (SELECT COUNT(*) FROM exams),
		   (SELECT COUNT(*) FROM exams WHERE status = 'PUBLISHED'),
		   (SELECT COUNT(*) FROM exam_results)`,
	).Scan(&s.TotalStudents, &s.TotalExams, &s.PublishedExams, &s.TotalResults)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListRecentExams returns the latest exams with their result volume and
// average score.
func (r *DashboardRepository) ListRecentExams(ctx context.Context, limit int) ([]model.ExamActivity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, e.title, e.category, e.status,
		        COUNT(res.id), COALESCE(AVG(res.score), 0), e.created_at
		 FROM exams e
		 LEFT JOIN exam_results res ON res.exam_id = e.id
		 GROUP BY e.id
		 ORDER BY e.created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []model.ExamActivity
	for rows.Next() {
		var a model.ExamActivity
		if err := rows.Scan(&a.ExamID, &a.Title, &a.Category, &a.Status,
			&a.ResultCount, &a.AverageScore, &a.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// ListTopCategories returns categories ranked by result volume.
func (r *DashboardRepository) ListTopCategories(ctx context.Context, limit int) ([]model.CategoryActivity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT category, COUNT(*), COALESCE(AVG(accuracy), 0)
		 FROM exam_results
		 GROUP BY category
		 ORDER BY COUNT(*) DESC, category
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []model.CategoryActivity
	for rows.Next() {
		var c model.CategoryActivity
		if err := rows.Scan(&c.Category, &c.ResultCount, &c.AvgAccuracy); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}
