package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prepzone/prepzone-backend/internal/model"
	"github.com/prepzone/prepzone-backend/internal/repository"
)

// ErrResultForbidden is returned when a student requests someone else's result.
var ErrResultForbidden = errors.New("result belongs to another user")

// ResultService exposes the append-only result store to students and admins.
type ResultService struct {
	resultRepo   *repository.ResultRepository
	attemptRepo  *repository.AttemptRepository
	questionRepo *repository.QuestionRepository
}

// NewResultService creates a new ResultService.
func NewResultService(resultRepo *repository.ResultRepository, attemptRepo *repository.AttemptRepository, questionRepo *repository.QuestionRepository) *ResultService {
	return &ResultService{resultRepo: resultRepo, attemptRepo: attemptRepo, questionRepo: questionRepo}
}

// Get retrieves a result. Students may only read their own; admins may read
// any (pass isAdmin=true).
func (s *ResultService) Get(ctx context.Context, resultID uuid.UUID, requesterID int, isAdmin bool) (*model.ExamResult, error) {
	result, err := s.resultRepo.GetByID(ctx, resultID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !isAdmin && result.UserID != requesterID {
		return nil, ErrResultForbidden
	}
	return result, nil
}

// ListByUser returns a user's result history, newest first.
func (s *ResultService) ListByUser(ctx context.Context, userID int) ([]model.ExamResult, error) {
	return s.resultRepo.ListByUser(ctx, userID)
}

// ListByExam returns an exam's results ranked by score. Admin only.
func (s *ResultService) ListByExam(ctx context.Context, examID uuid.UUID, page, perPage int) ([]model.ExamResult, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.resultRepo.ListByExamPaginated(ctx, examID, perPage, (page-1)*perPage)
}

// ExportText renders a result as a plain-text report card with a
// per-question breakdown. The download is student-facing, so correct
// answers are included; the attempt is already over.
func (s *ResultService) ExportText(ctx context.Context, resultID uuid.UUID, requesterID int, isAdmin bool) (string, error) {
	result, err := s.Get(ctx, resultID, requesterID, isAdmin)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", result.ExamTitle)
	fmt.Fprintf(&b, "Category: %s\n", result.Category)
	fmt.Fprintf(&b, "Submitted: %s\n", result.SubmittedAt.Format("2006-01-02 15:04 MST"))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	fmt.Fprintf(&b, "Score: %.2f / %.2f\n", result.Score, result.MaxScore)
	fmt.Fprintf(&b, "Accuracy: %.1f%%\n", result.Accuracy)
	fmt.Fprintf(&b, "Time taken: %dm %ds\n", result.TimeTakenSecs/60, result.TimeTakenSecs%60)
	fmt.Fprintf(&b, "Attempted: %d  Correct: %d  Incorrect: %d  Unanswered: %d\n",
		result.Attempted, result.Correct, result.Incorrect, result.Unanswered)
	fmt.Fprintf(&b, "Overall: %s\n\n", qualifiedLabel(result.Qualified))

	if len(result.Sections) > 0 {
		b.WriteString("Sections\n" + strings.Repeat("-", 60) + "\n")
		for _, sec := range result.Sections {
			fmt.Fprintf(&b, "%-20s %.2f / %.2f  (acc %.1f%%)  %s\n",
				sec.Name, sec.Score, sec.MaxScore, sec.Accuracy, qualifiedLabel(sec.Qualified))
		}
		b.WriteString("\n")
	}

	if err := s.appendQuestionBreakdown(ctx, &b, result); err != nil {
		// The summary is still useful when the answer rows are gone
		// (e.g. the exam was deleted). Export what we have.
		return b.String(), nil
	}
	return b.String(), nil
}

func (s *ResultService) appendQuestionBreakdown(ctx context.Context, b *strings.Builder, result *model.ExamResult) error {
	attempt, err := s.attemptRepo.GetByExamAndUser(ctx, result.ExamID, result.UserID)
	if err != nil {
		return err
	}
	answers, err := s.attemptRepo.MapAnswers(ctx, attempt.ID)
	if err != nil {
		return err
	}
	questions, err := s.questionRepo.ListByExam(ctx, result.ExamID)
	if err != nil || len(questions) == 0 {
		return fmt.Errorf("no questions available")
	}

	b.WriteString("Questions\n" + strings.Repeat("-", 60) + "\n")
	num := 0
	for _, q := range questions {
		ans, answered := answers[q.ID.String()]

		if q.QuestionType == model.QuestionTypeReadingComprehension {
			for _, sq := range q.SubQuestions {
				num++
				var sel *int
				if answered {
					if v, ok := ans.Sub[sq.ID]; ok {
						sel = &v
					}
				}
				writeQuestionLine(b, num, sq.Prompt, sq.Options, sq.CorrectIndex, sel)
			}
			continue
		}

		num++
		var sel *int
		if answered {
			sel = ans.Selected
		}
		writeQuestionLine(b, num, q.Prompt, q.Options, q.CorrectIndex, sel)
	}
	return nil
}

func writeQuestionLine(b *strings.Builder, num int, prompt string, options []string, correctIndex int, selected *int) {
	const maxPrompt = 70
	p := strings.Join(strings.Fields(prompt), " ")
	if len(p) > maxPrompt {
		// Back up to a rune boundary so multi-byte prompts stay valid UTF-8.
		cut := maxPrompt - 3
		for cut > 0 && !utf8.RuneStart(p[cut]) {
			cut--
		}
		p = p[:cut] + "..."
	}

	verdict := "unanswered"
	yours := "-"
	if selected != nil {
		if *selected >= 0 && *selected < len(options) {
			yours = options[*selected]
		}
		if *selected == correctIndex {
			verdict = "correct"
		} else {
			verdict = "incorrect"
		}
	}

	correct := ""
	if correctIndex >= 0 && correctIndex < len(options) {
		correct = options[correctIndex]
	}

	fmt.Fprintf(b, "Q%d. %s\n", num, p)
	fmt.Fprintf(b, "     Your answer: %s | Correct: %s | %s\n", yours, correct, verdict)
}

func qualifiedLabel(q bool) string {
	if q {
		return "QUALIFIED"
	}
	return "NOT QUALIFIED"
}
