package service

import (
	"context"

	"github.com/prepzone/prepzone-backend/internal/model"
	"github.com/prepzone/prepzone-backend/internal/repository"
)

// DashboardOverview bundles the admin dashboard blocks into one payload.
type DashboardOverview struct {
	Summary       *model.DashboardSummary  `json:"summary"`
	RecentExams   []model.ExamActivity     `json:"recent_exams"`
	TopCategories []model.CategoryActivity `json:"top_categories"`
}

// DashboardService assembles the admin dashboard.
type DashboardService struct {
	dashRepo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashRepo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashRepo: dashRepo}
}

// GetOverview runs the dashboard aggregates.
func (s *DashboardService) GetOverview(ctx context.Context) (*DashboardOverview, error) {
	summary, err := s.dashRepo.GetSummary(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.dashRepo.ListRecentExams(ctx, 10)
	if err != nil {
		return nil, err
	}
	cats, err := s.dashRepo.ListTopCategories(ctx, 5)
	if err != nil {
		return nil, err
	}
	return &DashboardOverview{
		Summary:       summary,
		RecentExams:   recent,
		TopCategories: cats,
	}, nil
}
