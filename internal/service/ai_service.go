package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/prepzone/prepzone-backend/internal/ai"
	"github.com/prepzone/prepzone-backend/internal/model"
	"github.com/prepzone/prepzone-backend/internal/repository"
)

// GenerateQuestionsRequest asks the AI to produce questions for a draft
// exam section.
type GenerateQuestionsRequest struct {
	Section    string `json:"section" binding:"required,min=1,max=100"`
	Topic      string `json:"topic" binding:"omitempty,max=100"`
	Difficulty string `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Count      int    `json:"count" binding:"required,min=1,max=50"`
}

// ParseQuestionRequest carries free-form question text for structuring.
type ParseQuestionRequest struct {
	Text string `json:"text" binding:"required,min=10,max=10000"`
}

// AIService glues the AI flows to the rest of the platform: it feeds stored
// results into analysis, lands generated questions on draft exams, and
// exposes free-text parsing to the question editor.
type AIService struct {
	client       *ai.Client
	resultRepo   *repository.ResultRepository
	attemptRepo  *repository.AttemptRepository
	questionRepo *repository.QuestionRepository
	questionSvc  *QuestionService
}

// NewAIService creates a new AIService.
func NewAIService(client *ai.Client, resultRepo *repository.ResultRepository, attemptRepo *repository.AttemptRepository, questionRepo *repository.QuestionRepository, questionSvc *QuestionService) *AIService {
	return &AIService{
		client:       client,
		resultRepo:   resultRepo,
		attemptRepo:  attemptRepo,
		questionRepo: questionRepo,
		questionSvc:  questionSvc,
	}
}

// AnalyzeResult builds an analysis request from a stored result and the
// topic tags of its questions, then asks the model for study advice.
func (s *AIService) AnalyzeResult(ctx context.Context, resultID uuid.UUID, requesterID int, isAdmin bool) (*ai.AnalysisOutput, error) {
	result, err := s.resultRepo.GetByID(ctx, resultID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !isAdmin && result.UserID != requesterID {
		return nil, ErrResultForbidden
	}

	strong, weak := s.topicSplit(ctx, result)

	input := ai.AnalysisInput{
		Category:      result.Category,
		TestType:      result.ExamTitle,
		Score:         result.Score,
		MaxScore:      result.MaxScore,
		TimeTakenSecs: result.TimeTakenSecs,
		StrongTopics:  strong,
		WeakTopics:    weak,
	}
	return s.client.AnalyzePerformance(ctx, input)
}

// GenerateQuestions produces AI questions for one section of a draft exam
// and appends them to it. The exam stays in DRAFT for human review before
// publishing.
func (s *AIService) GenerateQuestions(ctx context.Context, examID uuid.UUID, req *GenerateQuestionsRequest) ([]model.Question, error) {
	generated, err := s.client.GenerateQuestions(ctx, ai.GenerationInput{
		Section:    req.Section,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Count:      req.Count,
	})
	if err != nil {
		return nil, err
	}

	existing, err := s.questionRepo.CountByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}

	var out []model.Question
	for i, g := range generated {
		q, err := s.questionSvc.Add(ctx, examID, &model.AddQuestionRequest{
			Section:      req.Section,
			QuestionType: string(model.QuestionTypeStandard),
			Prompt:       g.Prompt,
			Options:      g.Options,
			CorrectIndex: g.CorrectIndex,
			Marks:        g.Marks,
			Subject:      g.Subject,
			Topic:        g.Topic,
			Difficulty:   g.Difficulty,
			Explanation:  g.Explanation,
			OrderNum:     existing + i + 1,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	return out, nil
}

// ParseQuestion structures free-form question text without persisting it.
func (s *AIService) ParseQuestion(ctx context.Context, req *ParseQuestionRequest) (*ai.GeneratedQuestion, error) {
	return s.client.ParseQuestion(ctx, req.Text)
}

// topicSplit labels the learner's strongest and weakest areas for the
// analysis prompt: best-performing half strong, the rest weak. Topic tags
// ranked by the learner's per-topic accuracy are preferred; when the
// questions or answer rows are gone it falls back to ranking the result's
// section accuracies.
func (s *AIService) topicSplit(ctx context.Context, result *model.ExamResult) (strong, weak []string) {
	topics := s.topicRanking(ctx, result)
	if len(topics) > 0 {
		mid := (len(topics) + 1) / 2
		return topics[:mid], topics[mid:]
	}

	sections := make([]model.SectionResult, len(result.Sections))
	copy(sections, result.Sections)
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Accuracy > sections[j].Accuracy
	})

	mid := (len(sections) + 1) / 2
	for i, sec := range sections {
		if i < mid {
			strong = append(strong, sec.Name)
		} else {
			weak = append(weak, sec.Name)
		}
	}
	return strong, weak
}

// topicRanking loads the exam's questions and the learner's saved answers
// and ranks the distinct topic tags best to worst.
func (s *AIService) topicRanking(ctx context.Context, result *model.ExamResult) []string {
	questions, err := s.questionRepo.ListByExam(ctx, result.ExamID)
	if err != nil {
		return nil
	}
	attempt, err := s.attemptRepo.GetByExamAndUser(ctx, result.ExamID, result.UserID)
	if err != nil {
		return nil
	}
	answers, err := s.attemptRepo.MapAnswers(ctx, attempt.ID)
	if err != nil {
		return nil
	}
	return rankTopicsByAccuracy(questions, answers)
}

// rankTopicsByAccuracy orders the distinct topic tags by the share of their
// units the learner answered correctly, best first. Unanswered units count
// against the topic; ties break on the topic name so the ranking is stable.
func rankTopicsByAccuracy(questions []model.Question, answers model.AnswerMap) []string {
	type tally struct{ correct, total int }
	tallies := make(map[string]*tally)

	record := func(topic string, correct bool) {
		t := tallies[topic]
		if t == nil {
			t = &tally{}
			tallies[topic] = t
		}
		t.total++
		if correct {
			t.correct++
		}
	}

	for i := range questions {
		q := &questions[i]
		if q.Topic == "" {
			continue
		}
		ans, answered := answers[q.ID.String()]

		if q.QuestionType == model.QuestionTypeReadingComprehension {
			for _, sq := range q.SubQuestions {
				correct := false
				if answered {
					if sel, ok := ans.Sub[sq.ID]; ok {
						correct = sel == sq.CorrectIndex
					}
				}
				record(q.Topic, correct)
			}
			continue
		}

		record(q.Topic, answered && ans.Selected != nil && *ans.Selected == q.CorrectIndex)
	}

	topics := make([]string, 0, len(tallies))
	for topic := range tallies {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		a, b := tallies[topics[i]], tallies[topics[j]]
		ra := float64(a.correct) / float64(a.total)
		rb := float64(b.correct) / float64(b.total)
		if ra != rb {
			return ra > rb
		}
		return topics[i] < topics[j]
	})
	return topics
}
