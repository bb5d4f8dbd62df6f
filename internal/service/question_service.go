package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prepzone/prepzone-backend/internal/model"
	"github.com/prepzone/prepzone-backend/internal/repository"
)

// ErrQuestionShape is returned when a question payload mixes or omits the
// fields its type requires.
var ErrQuestionShape = errors.New("question fields do not match its type")

// QuestionService manages the question sets of draft exams.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	examRepo     *repository.ExamRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, examRepo *repository.ExamRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, examRepo: examRepo}
}

// ListByExam returns an exam's questions in order, grading fields included.
// Admin only.
func (s *QuestionService) ListByExam(ctx context.Context, examID uuid.UUID) ([]model.Question, error) {
	if _, err := s.requireDraftOrAny(ctx, examID, false); err != nil {
		return nil, err
	}
	return s.questionRepo.ListByExam(ctx, examID)
}

// Add attaches one question to a draft exam.
func (s *QuestionService) Add(ctx context.Context, examID uuid.UUID, req *model.AddQuestionRequest) (*model.Question, error) {
	exam, err := s.requireDraftOrAny(ctx, examID, true)
	if err != nil {
		return nil, err
	}

	q, err := buildQuestion(exam, req)
	if err != nil {
		return nil, err
	}
	q.ExamID = examID

	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

// Update replaces a question's content on a draft exam.
func (s *QuestionService) Update(ctx context.Context, examID, questionID uuid.UUID, req *model.AddQuestionRequest) (*model.Question, error) {
	exam, err := s.requireDraftOrAny(ctx, examID, true)
	if err != nil {
		return nil, err
	}

	existing, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if existing.ExamID != examID {
		return nil, ErrNotFound
	}

	q, err := buildQuestion(exam, req)
	if err != nil {
		return nil, err
	}
	q.ID = questionID
	q.ExamID = examID

	if err := s.questionRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Delete removes a question from a draft exam.
func (s *QuestionService) Delete(ctx context.Context, examID, questionID uuid.UUID) error {
	if _, err := s.requireDraftOrAny(ctx, examID, true); err != nil {
		return err
	}

	existing, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if existing.ExamID != examID {
		return ErrNotFound
	}
	return s.questionRepo.Delete(ctx, questionID)
}

// ReplaceAll swaps a draft exam's entire question set in one transaction.
// Used by bulk import and AI generation.
func (s *QuestionService) ReplaceAll(ctx context.Context, examID uuid.UUID, req *model.ReplaceQuestionsRequest) ([]model.Question, error) {
	exam, err := s.requireDraftOrAny(ctx, examID, true)
	if err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for i := range req.Questions {
		q, err := buildQuestion(exam, &req.Questions[i])
		if err != nil {
			return nil, err
		}
		if q.OrderNum == 0 {
			q.OrderNum = i + 1
		}
		questions = append(questions, *q)
	}

	if err := s.questionRepo.ReplaceAll(ctx, examID, questions); err != nil {
		return nil, fmt.Errorf("replace questions: %w", err)
	}
	return questions, nil
}

func (s *QuestionService) requireDraftOrAny(ctx context.Context, examID uuid.UUID, draftOnly bool) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if draftOnly && exam.Status != model.ExamStatusDraft {
		return nil, ErrExamNotDraft
	}
	return exam, nil
}

func buildQuestion(exam *model.Exam, req *model.AddQuestionRequest) (*model.Question, error) {
	if exam.SectionByName(req.Section) == nil {
		return nil, ErrSectionMismatch
	}

	qt := model.QuestionType(req.QuestionType)
	switch qt {
	case model.QuestionTypeStandard:
		if len(req.Options) < 2 || len(req.SubQuestions) > 0 {
			return nil, ErrQuestionShape
		}
		if req.CorrectIndex < 0 || req.CorrectIndex >= len(req.Options) {
			return nil, ErrQuestionShape
		}
	case model.QuestionTypeReadingComprehension:
		if len(req.SubQuestions) == 0 || len(req.Options) > 0 {
			return nil, ErrQuestionShape
		}
		for _, sq := range req.SubQuestions {
			if sq.CorrectIndex < 0 || sq.CorrectIndex >= len(sq.Options) {
				return nil, ErrQuestionShape
			}
		}
	default:
		return nil, ErrQuestionShape
	}

	marks := req.Marks
	if marks == 0 && qt == model.QuestionTypeStandard {
		marks = exam.SectionByName(req.Section).MarksPerQuestion
	}

	subs := make([]model.SubQuestion, len(req.SubQuestions))
	copy(subs, req.SubQuestions)
	for i := range subs {
		if subs[i].Marks == 0 {
			subs[i].Marks = exam.SectionByName(req.Section).MarksPerQuestion
		}
	}

	return &model.Question{
		Section:      req.Section,
		QuestionType: qt,
		Prompt:       req.Prompt,
		Options:      req.Options,
		CorrectIndex: req.CorrectIndex,
		Marks:        marks,
		Subject:      req.Subject,
		Topic:        req.Topic,
		Difficulty:   req.Difficulty,
		Explanation:  req.Explanation,
		SubQuestions: subs,
		OrderNum:     req.OrderNum,
	}, nil
}
