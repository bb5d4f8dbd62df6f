package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prepzone/prepzone-backend/internal/config"
	"github.com/prepzone/prepzone-backend/internal/model"
	"github.com/prepzone/prepzone-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Common exam errors.
var (
	ErrExamNotDraft     = errors.New("exam is not in draft status")
	ErrExamNotPublished = errors.New("exam is not published")
	ErrNoQuestions      = errors.New("exam has no questions")
	ErrSectionMismatch  = errors.New("section question counts do not match attached questions")
	ErrDuplicateSection = errors.New("duplicate section name")
)

// ExamService handles exam lifecycle and the learner-facing catalog.
type ExamService struct {
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository
	rdb          *redis.Client
}

// NewExamService creates a new ExamService.
func NewExamService(examRepo *repository.ExamRepository, questionRepo *repository.QuestionRepository, rdb *redis.Client) *ExamService {
	return &ExamService{examRepo: examRepo, questionRepo: questionRepo, rdb: rdb}
}

// Create inserts a new exam in DRAFT status.
func (s *ExamService) Create(ctx context.Context, authorID int, req *model.CreateExamRequest) (*model.Exam, error) {
	if name := duplicateSectionName(req.Sections); name != "" {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateSection, name)
	}
	exam := &model.Exam{
		Title:           req.Title,
		Category:        req.Category,
		SubCategory:     req.SubCategory,
		Sections:        req.Sections,
		DurationMinutes: req.DurationMinutes,
		NegativeMark:    req.NegativeMark,
		OverallCutoff:   req.OverallCutoff,
		IsFree:          req.IsFree,
		Status:          model.ExamStatusDraft,
		ScheduledStart:  req.ScheduledStart,
		ScheduledEnd:    req.ScheduledEnd,
		AuthorID:        authorID,
	}
	if err := s.examRepo.Create(ctx, exam); err != nil {
		return nil, fmt.Errorf("create exam: %w", err)
	}
	return exam, nil
}

// Get retrieves an exam by id.
func (s *ExamService) Get(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return exam, nil
}

// Update applies partial updates to a DRAFT exam. Published and archived
// exams are immutable so historical results stay interpretable.
func (s *ExamService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateExamRequest) (*model.Exam, error) {
	exam, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam.Status != model.ExamStatusDraft {
		return nil, ErrExamNotDraft
	}

	if req.Title != "" {
		exam.Title = req.Title
	}
	if req.Category != "" {
		exam.Category = req.Category
	}
	if req.SubCategory != nil {
		exam.SubCategory = *req.SubCategory
	}
	if req.Sections != nil {
		if name := duplicateSectionName(req.Sections); name != "" {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSection, name)
		}
		exam.Sections = req.Sections
	}
	if req.DurationMinutes > 0 {
		exam.DurationMinutes = req.DurationMinutes
	}
	if req.NegativeMark != nil {
		exam.NegativeMark = *req.NegativeMark
	}
	if req.OverallCutoff != nil {
		exam.OverallCutoff = req.OverallCutoff
	}
	if req.IsFree != nil {
		exam.IsFree = *req.IsFree
	}
	if req.ScheduledStart != nil {
		exam.ScheduledStart = req.ScheduledStart
	}
	if req.ScheduledEnd != nil {
		exam.ScheduledEnd = req.ScheduledEnd
	}

	if err := s.examRepo.Update(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// Delete removes a DRAFT exam.
func (s *ExamService) Delete(ctx context.Context, id uuid.UUID) error {
	exam, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if exam.Status != model.ExamStatusDraft {
		return ErrExamNotDraft
	}
	return s.examRepo.Delete(ctx, id)
}

// Publish validates an exam's question set against its declared sections,
// flips it to PUBLISHED, and warms the Redis payload cache.
func (s *ExamService) Publish(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	exam, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam.Status != model.ExamStatusDraft {
		return nil, ErrExamNotDraft
	}

	questions, err := s.questionRepo.ListByExam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	// Every question must belong to a declared section, and each section's
	// declared count must match what is attached.
	perSection := make(map[string]int)
	for _, q := range questions {
		if exam.SectionByName(q.Section) == nil {
			return nil, ErrSectionMismatch
		}
		perSection[q.Section]++
	}
	for _, sec := range exam.Sections {
		if perSection[sec.Name] != sec.QuestionCount {
			return nil, ErrSectionMismatch
		}
	}

	if err := s.examRepo.UpdateStatus(ctx, id, model.ExamStatusPublished); err != nil {
		return nil, err
	}
	exam.Status = model.ExamStatusPublished

	if err := s.WarmExamCache(ctx, exam, questions); err != nil {
		log.Warn().Err(err).Str("exam_id", id.String()).Msg("exam cache warm failed")
	}
	return exam, nil
}

// Archive retires a published exam. The cached payload is dropped so new
// attempts can no longer start.
func (s *ExamService) Archive(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	exam, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam.Status != model.ExamStatusPublished {
		return nil, ErrExamNotPublished
	}

	if err := s.examRepo.UpdateStatus(ctx, id, model.ExamStatusArchived); err != nil {
		return nil, err
	}
	exam.Status = model.ExamStatusArchived

	s.rdb.Del(ctx, config.CacheKey.ExamPayloadKey(id.String()), config.CacheKey.ExamDurationKey(id.String()))
	return exam, nil
}

// WarmExamCache stores the learner-safe exam payload and duration in Redis.
func (s *ExamService) WarmExamCache(ctx context.Context, exam *model.Exam, questions []model.Question) error {
	payload := model.ExamPayload{
		ExamID:       exam.ID,
		Title:        exam.Title,
		Category:     exam.Category,
		Sections:     exam.Sections,
		Duration:     exam.DurationMinutes,
		NegativeMark: exam.NegativeMark,
	}
	for _, q := range questions {
		payload.Questions = append(payload.Questions, q.ForStudent())
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	examID := exam.ID.String()
	if err := s.rdb.Set(ctx, config.CacheKey.ExamPayloadKey(examID), data, 0).Err(); err != nil {
		return fmt.Errorf("cache payload: %w", err)
	}
	return s.rdb.Set(ctx, config.CacheKey.ExamDurationKey(examID), exam.DurationMinutes, 0).Err()
}

// PrewarmAllCaches loads every published exam into Redis.
// Called on application startup.
func (s *ExamService) PrewarmAllCaches(ctx context.Context) error {
	exams, err := s.examRepo.ListPublished(ctx, "", "")
	if err != nil {
		return fmt.Errorf("list published exams: %w", err)
	}

	for i := range exams {
		exam := &exams[i]
		questions, err := s.questionRepo.ListByExam(ctx, exam.ID)
		if err != nil {
			log.Warn().Err(err).Str("exam_id", exam.ID.String()).Msg("prewarm: load questions failed")
			continue
		}
		if err := s.WarmExamCache(ctx, exam, questions); err != nil {
			log.Warn().Err(err).Str("exam_id", exam.ID.String()).Msg("prewarm: cache warm failed")
			continue
		}
	}

	log.Info().Int("exams", len(exams)).Msg("exam cache prewarm complete")
	return nil
}

// GetCachedPayload fetches the learner-safe payload, falling back to the
// database and re-warming the cache on a miss.
func (s *ExamService) GetCachedPayload(ctx context.Context, examID uuid.UUID) (*model.ExamPayload, error) {
	data, err := s.rdb.Get(ctx, config.CacheKey.ExamPayloadKey(examID.String())).Bytes()
	if err == nil {
		payload := &model.ExamPayload{}
		if err := json.Unmarshal(data, payload); err == nil {
			return payload, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("read payload cache: %w", err)
	}

	exam, err := s.Get(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam.Status != model.ExamStatusPublished {
		return nil, ErrExamNotPublished
	}
	questions, err := s.questionRepo.ListByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if err := s.WarmExamCache(ctx, exam, questions); err != nil {
		log.Warn().Err(err).Str("exam_id", examID.String()).Msg("cache re-warm failed")
	}

	payload := &model.ExamPayload{
		ExamID:       exam.ID,
		Title:        exam.Title,
		Category:     exam.Category,
		Sections:     exam.Sections,
		Duration:     exam.DurationMinutes,
		NegativeMark: exam.NegativeMark,
	}
	for _, q := range questions {
		payload.Questions = append(payload.Questions, q.ForStudent())
	}
	return payload, nil
}

// ListPublished returns the public catalog, optionally filtered by category.
func (s *ExamService) ListPublished(ctx context.Context, category, subCategory string) ([]model.Exam, error) {
	return s.examRepo.ListPublished(ctx, category, subCategory)
}

// ListCategories returns the distinct published categories with exam counts.
func (s *ExamService) ListCategories(ctx context.Context) ([]model.CategorySummary, error) {
	return s.examRepo.ListCategories(ctx)
}

// duplicateSectionName returns the first section name that appears more
// than once, or "". Section names key the scoring breakdown, so they must
// be unique within an exam.
func duplicateSectionName(sections []model.Section) string {
	seen := make(map[string]bool, len(sections))
	for _, s := range sections {
		if seen[s.Name] {
			return s.Name
		}
		seen[s.Name] = true
	}
	return ""
}

// ListPaginated returns the admin exam listing.
func (s *ExamService) ListPaginated(ctx context.Context, page, perPage int) ([]model.Exam, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.examRepo.ListPaginated(ctx, perPage, (page-1)*perPage)
}
