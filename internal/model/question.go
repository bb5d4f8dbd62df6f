package model

import (
	"github.com/google/uuid"
)

// QuestionType distinguishes standalone questions from reading-comprehension
// passages carrying their own sub-questions.
type QuestionType string

const (
	QuestionTypeStandard             QuestionType = "STANDARD"
	QuestionTypeReadingComprehension QuestionType = "READING_COMPREHENSION"
)

// SubQuestion is one question under a reading-comprehension passage.
type SubQuestion struct {
	ID           string   `json:"id" binding:"required,min=1,max=50"`
	Prompt       string   `json:"prompt" binding:"required,min=1,max=2000"`
	Options      []string `json:"options" binding:"required,min=2,max=6"`
	CorrectIndex int      `json:"correct_index" binding:"min=0"`
	Marks        float64  `json:"marks" binding:"omitempty,gt=0"`
}

// Question represents a single exam question. For READING_COMPREHENSION the
// prompt is the passage and SubQuestions carries the actual questions;
// Options and CorrectIndex are unused on the parent.
type Question struct {
	ID           uuid.UUID     `json:"id"`
	ExamID       uuid.UUID     `json:"exam_id"`
	Section      string        `json:"section"`
	QuestionType QuestionType  `json:"question_type"`
	Prompt       string        `json:"prompt"`
	Options      []string      `json:"options,omitempty"`
	CorrectIndex int           `json:"correct_index"`
	Marks        float64       `json:"marks"`
	Subject      string        `json:"subject,omitempty"`
	Topic        string        `json:"topic,omitempty"`
	Difficulty   string        `json:"difficulty,omitempty"`
	Explanation  string        `json:"explanation,omitempty"`
	SubQuestions []SubQuestion `json:"sub_questions,omitempty"`
	OrderNum     int           `json:"order_num"`
}

// QuestionForStudent is a question without correct indexes or explanations,
// safe to send to a learner during an attempt.
type QuestionForStudent struct {
	ID           uuid.UUID               `json:"id"`
	Section      string                  `json:"section"`
	QuestionType QuestionType            `json:"question_type"`
	Prompt       string                  `json:"prompt"`
	Options      []string                `json:"options,omitempty"`
	Marks        float64                 `json:"marks"`
	SubQuestions []SubQuestionForStudent `json:"sub_questions,omitempty"`
	OrderNum     int                     `json:"order_num"`
}

// SubQuestionForStudent is a sub-question stripped of its correct index.
type SubQuestionForStudent struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Marks   float64  `json:"marks"`
}

// ForStudent strips grading information from a question.
func (q *Question) ForStudent() QuestionForStudent {
	out := QuestionForStudent{
		ID:           q.ID,
		Section:      q.Section,
		QuestionType: q.QuestionType,
		Prompt:       q.Prompt,
		Options:      q.Options,
		Marks:        q.Marks,
		OrderNum:     q.OrderNum,
	}
	for _, sq := range q.SubQuestions {
		out.SubQuestions = append(out.SubQuestions, SubQuestionForStudent{
			ID:      sq.ID,
			Prompt:  sq.Prompt,
			Options: sq.Options,
			Marks:   sq.Marks,
		})
	}
	return out
}

// AddQuestionRequest is the payload for adding a question to an exam.
type AddQuestionRequest struct {
	Section      string        `json:"section" binding:"required,min=1,max=100"`
	QuestionType string        `json:"question_type" binding:"required,oneof=STANDARD READING_COMPREHENSION"`
	Prompt       string        `json:"prompt" binding:"required,min=1,max=10000"`
	Options      []string      `json:"options" binding:"omitempty,min=2,max=6"`
	CorrectIndex int           `json:"correct_index" binding:"min=0"`
	Marks        float64       `json:"marks" binding:"omitempty,gt=0"`
	Subject      string        `json:"subject" binding:"omitempty,max=100"`
	Topic        string        `json:"topic" binding:"omitempty,max=100"`
	Difficulty   string        `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Explanation  string        `json:"explanation" binding:"omitempty,max=5000"`
	SubQuestions []SubQuestion `json:"sub_questions" binding:"omitempty,dive"`
	OrderNum     int           `json:"order_num" binding:"min=0"`
}

// ReplaceQuestionsRequest is the payload for bulk replacing an exam's questions.
type ReplaceQuestionsRequest struct {
	Questions []AddQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}
