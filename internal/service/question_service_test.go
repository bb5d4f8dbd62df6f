package service

import (
	"errors"
	"testing"

	"github.com/prepzone/prepzone-backend/internal/model"
)

func draftExam() *model.Exam {
	return &model.Exam{
		Status: model.ExamStatusDraft,
		Sections: []model.Section{
			{Name: "Quant", QuestionCount: 10, MarksPerQuestion: 2},
			{Name: "English", QuestionCount: 5, MarksPerQuestion: 1},
		},
	}
}

func TestBuildQuestionShape(t *testing.T) {
	tests := []struct {
		name    string
		req     model.AddQuestionRequest
		wantErr error
	}{
		{
			name: "standard valid",
			req: model.AddQuestionRequest{
				Section: "Quant", QuestionType: "STANDARD", Prompt: "1+1?",
				Options: []string{"1", "2"}, CorrectIndex: 1,
			},
		},
		{
			name: "standard single option",
			req: model.AddQuestionRequest{
				Section: "Quant", QuestionType: "STANDARD", Prompt: "1+1?",
				Options: []string{"2"}, CorrectIndex: 0,
			},
			wantErr: ErrQuestionShape,
		},
		{
			name: "standard correct index out of range",
			req: model.AddQuestionRequest{
				Section: "Quant", QuestionType: "STANDARD", Prompt: "1+1?",
				Options: []string{"1", "2"}, CorrectIndex: 2,
			},
			wantErr: ErrQuestionShape,
		},
		{
			name: "standard with sub questions",
			req: model.AddQuestionRequest{
				Section: "Quant", QuestionType: "STANDARD", Prompt: "1+1?",
				Options: []string{"1", "2"}, CorrectIndex: 0,
				SubQuestions: []model.SubQuestion{
					{ID: "a", Prompt: "p", Options: []string{"x", "y"}},
				},
			},
			wantErr: ErrQuestionShape,
		},
		{
			name: "rc valid",
			req: model.AddQuestionRequest{
				Section: "English", QuestionType: "READING_COMPREHENSION", Prompt: "Passage...",
				SubQuestions: []model.SubQuestion{
					{ID: "a", Prompt: "p1", Options: []string{"x", "y"}, CorrectIndex: 0},
					{ID: "b", Prompt: "p2", Options: []string{"x", "y", "z"}, CorrectIndex: 2},
				},
			},
		},
		{
			name: "rc without sub questions",
			req: model.AddQuestionRequest{
				Section: "English", QuestionType: "READING_COMPREHENSION", Prompt: "Passage...",
			},
			wantErr: ErrQuestionShape,
		},
		{
			name: "rc with top-level options",
			req: model.AddQuestionRequest{
				Section: "English", QuestionType: "READING_COMPREHENSION", Prompt: "Passage...",
				Options: []string{"x", "y"},
				SubQuestions: []model.SubQuestion{
					{ID: "a", Prompt: "p", Options: []string{"x", "y"}},
				},
			},
			wantErr: ErrQuestionShape,
		},
		{
			name: "rc sub index out of range",
			req: model.AddQuestionRequest{
				Section: "English", QuestionType: "READING_COMPREHENSION", Prompt: "Passage...",
				SubQuestions: []model.SubQuestion{
					{ID: "a", Prompt: "p", Options: []string{"x", "y"}, CorrectIndex: 5},
				},
			},
			wantErr: ErrQuestionShape,
		},
		{
			name: "unknown section",
			req: model.AddQuestionRequest{
				Section: "History", QuestionType: "STANDARD", Prompt: "q",
				Options: []string{"1", "2"}, CorrectIndex: 0,
			},
			wantErr: ErrSectionMismatch,
		},
		{
			name: "unknown question type",
			req: model.AddQuestionRequest{
				Section: "Quant", QuestionType: "ESSAY", Prompt: "q",
			},
			wantErr: ErrQuestionShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildQuestion(draftExam(), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("buildQuestion() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildQuestionMarksDefaulting(t *testing.T) {
	exam := draftExam()

	q, err := buildQuestion(exam, &model.AddQuestionRequest{
		Section: "Quant", QuestionType: "STANDARD", Prompt: "1+1?",
		Options: []string{"1", "2"}, CorrectIndex: 1,
	})
	if err != nil {
		t.Fatalf("buildQuestion() error = %v", err)
	}
	if q.Marks != 2 {
		t.Errorf("standard marks = %v, want section default 2", q.Marks)
	}

	q, err = buildQuestion(exam, &model.AddQuestionRequest{
		Section: "Quant", QuestionType: "STANDARD", Prompt: "1+1?",
		Options: []string{"1", "2"}, CorrectIndex: 1, Marks: 5,
	})
	if err != nil {
		t.Fatalf("buildQuestion() error = %v", err)
	}
	if q.Marks != 5 {
		t.Errorf("explicit marks = %v, want 5", q.Marks)
	}

	q, err = buildQuestion(exam, &model.AddQuestionRequest{
		Section: "English", QuestionType: "READING_COMPREHENSION", Prompt: "Passage...",
		SubQuestions: []model.SubQuestion{
			{ID: "a", Prompt: "p1", Options: []string{"x", "y"}, CorrectIndex: 0},
			{ID: "b", Prompt: "p2", Options: []string{"x", "y"}, CorrectIndex: 1, Marks: 3},
		},
	})
	if err != nil {
		t.Fatalf("buildQuestion() error = %v", err)
	}
	if q.SubQuestions[0].Marks != 1 {
		t.Errorf("sub marks = %v, want section default 1", q.SubQuestions[0].Marks)
	}
	if q.SubQuestions[1].Marks != 3 {
		t.Errorf("explicit sub marks = %v, want 3", q.SubQuestions[1].Marks)
	}
}
