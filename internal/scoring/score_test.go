package scoring

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/prepzone/prepzone-backend/internal/model"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// buildExam creates a two-section exam: section A and B, five one-mark
// questions each, negative mark 0.25, section A cutoff 3, no overall cutoff.
// This mirrors the canonical sectional-cutoff scenario.
func buildExam() (*model.Exam, []model.Question) {
	exam := &model.Exam{
		ID:       uuid.New(),
		Title:    "SSC CGL Mock 4",
		Category: "SSC",
		Sections: []model.Section{
			{Name: "Reasoning", QuestionCount: 5, MarksPerQuestion: 1, Cutoff: floatPtr(3)},
			{Name: "Quantitative", QuestionCount: 5, MarksPerQuestion: 1},
		},
		DurationMinutes: 30,
		NegativeMark:    0.25,
	}

	var questions []model.Question
	for _, section := range []string{"Reasoning", "Quantitative"} {
		for i := 0; i < 5; i++ {
			questions = append(questions, model.Question{
				ID:           uuid.New(),
				ExamID:       exam.ID,
				Section:      section,
				QuestionType: model.QuestionTypeStandard,
				Prompt:       "q",
				Options:      []string{"a", "b", "c", "d"},
				CorrectIndex: i % 4,
				Marks:        1,
			})
		}
	}
	return exam, questions
}

func answerAll(questions []model.Question, correct bool) model.AnswerMap {
	answers := make(model.AnswerMap)
	for _, q := range questions {
		idx := q.CorrectIndex
		if !correct {
			idx = (q.CorrectIndex + 1) % len(q.Options)
		}
		answers[q.ID.String()] = model.Answer{Selected: intPtr(idx)}
	}
	return answers
}

func TestScoreAllCorrect(t *testing.T) {
	exam, questions := buildExam()
	result, err := Score(exam, questions, answerAll(questions, true), 900)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	if result.Score != 10 {
		t.Errorf("Score = %v, want 10", result.Score)
	}
	if result.MaxScore != 10 {
		t.Errorf("MaxScore = %v, want 10", result.MaxScore)
	}
	if result.Accuracy != 100 {
		t.Errorf("Accuracy = %v, want 100", result.Accuracy)
	}
	if result.Correct != 10 || result.Incorrect != 0 || result.Unanswered != 0 {
		t.Errorf("counts = %d/%d/%d, want 10/0/0", result.Correct, result.Incorrect, result.Unanswered)
	}
	if result.TimeTakenSecs != 900 {
		t.Errorf("TimeTakenSecs = %d, want 900", result.TimeTakenSecs)
	}
}

func TestScoreAllUnanswered(t *testing.T) {
	exam, questions := buildExam()
	result, err := Score(exam, questions, model.AnswerMap{}, 10)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	if result.Score != 0 {
		t.Errorf("Score = %v, want 0", result.Score)
	}
	if result.Accuracy != 0 {
		t.Errorf("Accuracy = %v, want 0 (zero denominator)", result.Accuracy)
	}
	if result.Unanswered != 10 || result.TotalQuestions != 10 {
		t.Errorf("Unanswered = %d, TotalQuestions = %d, want 10, 10", result.Unanswered, result.TotalQuestions)
	}
	// No cutoffs hit: section A cutoff is 3, score 0 does not qualify.
	if result.Sections[0].Qualified {
		t.Error("section with cutoff 3 should not qualify at score 0")
	}
	if !result.Sections[1].Qualified {
		t.Error("section without cutoff should always qualify")
	}
	if !result.Qualified {
		t.Error("no overall cutoff means overall qualified")
	}
}

func TestScoreNoCutoffsAlwaysQualified(t *testing.T) {
	exam, questions := buildExam()
	exam.Sections[0].Cutoff = nil

	result, err := Score(exam, questions, model.AnswerMap{}, 0)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	for _, sec := range result.Sections {
		if !sec.Qualified {
			t.Errorf("section %q should qualify without a cutoff", sec.Name)
		}
	}
	if !result.Qualified {
		t.Error("overall should qualify without a cutoff")
	}
}

// TestScoreSectionalScenario is the canonical scenario: section A answered
// with 4 correct and 1 wrong, section B untouched.
func TestScoreSectionalScenario(t *testing.T) {
	exam, questions := buildExam()

	answers := make(model.AnswerMap)
	for i, q := range questions[:5] {
		idx := q.CorrectIndex
		if i == 4 { // one wrong answer
			idx = (q.CorrectIndex + 1) % len(q.Options)
		}
		answers[q.ID.String()] = model.Answer{Selected: intPtr(idx)}
	}

	result, err := Score(exam, questions, answers, 1200)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	secA := result.Sections[0]
	if secA.Score != 3.75 {
		t.Errorf("section A score = %v, want 3.75", secA.Score)
	}
	if !secA.Qualified {
		t.Error("section A should qualify (3.75 >= 3)")
	}
	if secA.Attempted != 5 || secA.Correct != 4 || secA.Incorrect != 1 {
		t.Errorf("section A counts = %d/%d/%d, want 5/4/1", secA.Attempted, secA.Correct, secA.Incorrect)
	}

	secB := result.Sections[1]
	if secB.Score != 0 || secB.Unattempted != 5 {
		t.Errorf("section B = score %v unattempted %d, want 0, 5", secB.Score, secB.Unattempted)
	}

	if result.Score != 3.75 {
		t.Errorf("total score = %v, want 3.75", result.Score)
	}
	if result.Accuracy != 80 {
		t.Errorf("accuracy = %v, want 80", result.Accuracy)
	}
	if !result.Qualified {
		t.Error("overall should qualify (no overall cutoff)")
	}
}

func TestScoreOverallCutoff(t *testing.T) {
	exam, questions := buildExam()
	exam.OverallCutoff = floatPtr(9.5)

	result, err := Score(exam, questions, answerAll(questions, true), 60)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if !result.Qualified {
		t.Error("10 >= 9.5 should qualify")
	}

	exam.OverallCutoff = floatPtr(10.5)
	result, err = Score(exam, questions, answerAll(questions, true), 60)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if result.Qualified {
		t.Error("10 < 10.5 should not qualify")
	}
}

func TestScoreReadingComprehension(t *testing.T) {
	exam := &model.Exam{
		ID:       uuid.New(),
		Title:    "Bank PO English",
		Category: "Banking",
		Sections: []model.Section{
			{Name: "English", QuestionCount: 1, MarksPerQuestion: 1},
		},
		NegativeMark: 0.5,
	}
	passage := model.Question{
		ID:           uuid.New(),
		ExamID:       exam.ID,
		Section:      "English",
		QuestionType: model.QuestionTypeReadingComprehension,
		Prompt:       "A long passage...",
		SubQuestions: []model.SubQuestion{
			{ID: "sq1", Prompt: "p1", Options: []string{"a", "b"}, CorrectIndex: 0, Marks: 1},
			{ID: "sq2", Prompt: "p2", Options: []string{"a", "b"}, CorrectIndex: 1, Marks: 1},
			{ID: "sq3", Prompt: "p3", Options: []string{"a", "b"}, CorrectIndex: 0, Marks: 2},
		},
	}
	questions := []model.Question{passage}

	// sq1 correct, sq2 wrong, sq3 unanswered.
	answers := model.AnswerMap{
		passage.ID.String(): {Sub: map[string]int{"sq1": 0, "sq2": 0}},
	}

	result, err := Score(exam, questions, answers, 300)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	if result.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3 (one per sub-question)", result.TotalQuestions)
	}
	if result.Correct != 1 || result.Incorrect != 1 || result.Unanswered != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", result.Correct, result.Incorrect, result.Unanswered)
	}
	if result.Score != 0.5 { // +1 - 0.5 + 0
		t.Errorf("Score = %v, want 0.5", result.Score)
	}
	if result.MaxScore != 4 {
		t.Errorf("MaxScore = %v, want 4", result.MaxScore)
	}
}

func TestScoreIdempotent(t *testing.T) {
	exam, questions := buildExam()
	answers := answerAll(questions, true)
	delete(answers, questions[7].ID.String())

	first, err := Score(exam, questions, answers, 777)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Score(exam, questions, answers, 777)
		if err != nil {
			t.Fatalf("Score() rerun error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("rerun %d produced a different result:\n%+v\nvs\n%+v", i, first, again)
		}
	}
}

func TestScoreValidationErrors(t *testing.T) {
	exam, questions := buildExam()

	t.Run("unknown question id", func(t *testing.T) {
		answers := model.AnswerMap{uuid.NewString(): {Selected: intPtr(0)}}
		result, err := Score(exam, questions, answers, 0)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("err = %v, want ErrValidation", err)
		}
		if result != nil {
			t.Error("no partial result should be produced on validation failure")
		}
	})

	t.Run("section count mismatch", func(t *testing.T) {
		short := questions[:9] // section B now has 4 of declared 5
		_, err := Score(exam, short, model.AnswerMap{}, 0)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("unknown section tag", func(t *testing.T) {
		bad := make([]model.Question, len(questions))
		copy(bad, questions)
		bad[0].Section = "GeneralAwareness"
		_, err := Score(exam, bad, model.AnswerMap{}, 0)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("unknown sub-question id", func(t *testing.T) {
		rcExam := &model.Exam{
			ID:       uuid.New(),
			Sections: []model.Section{{Name: "English", QuestionCount: 1, MarksPerQuestion: 1}},
		}
		rc := model.Question{
			ID:           uuid.New(),
			Section:      "English",
			QuestionType: model.QuestionTypeReadingComprehension,
			SubQuestions: []model.SubQuestion{{ID: "sq1", Options: []string{"a", "b"}, Marks: 1}},
		}
		answers := model.AnswerMap{rc.ID.String(): {Sub: map[string]int{"nope": 0}}}
		_, err := Score(rcExam, []model.Question{rc}, answers, 0)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("shape mismatch", func(t *testing.T) {
		answers := model.AnswerMap{questions[0].ID.String(): {Sub: map[string]int{"sq1": 0}}}
		_, err := Score(exam, questions, answers, 0)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("err = %v, want ErrValidation", err)
		}
	})
}
