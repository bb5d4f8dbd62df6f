package service

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/prepzone/prepzone-backend/internal/model"
)

func taggedQuestion(topic string, correctIndex int) model.Question {
	return model.Question{
		ID:           uuid.New(),
		QuestionType: model.QuestionTypeStandard,
		Options:      []string{"a", "b", "c", "d"},
		CorrectIndex: correctIndex,
		Topic:        topic,
	}
}

func selected(v int) model.Answer { return model.Answer{Selected: &v} }

func TestRankTopicsByAccuracy(t *testing.T) {
	// Aced Zoology, failed Algebra. Alphabetical order would invert this.
	zoo1 := taggedQuestion("Zoology", 1)
	zoo2 := taggedQuestion("Zoology", 2)
	alg1 := taggedQuestion("Algebra", 0)
	alg2 := taggedQuestion("Algebra", 3)

	answers := model.AnswerMap{
		zoo1.ID.String(): selected(1),
		zoo2.ID.String(): selected(2),
		alg1.ID.String(): selected(1),
		alg2.ID.String(): selected(0),
	}

	got := rankTopicsByAccuracy([]model.Question{alg1, alg2, zoo1, zoo2}, answers)
	want := []string{"Zoology", "Algebra"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranking = %v, want %v", got, want)
	}
}

func TestRankTopicsByAccuracyUnansweredCountsAgainst(t *testing.T) {
	// Skipped units drag a topic down the same as wrong ones.
	geo1 := taggedQuestion("Geometry", 0)
	geo2 := taggedQuestion("Geometry", 0)
	his1 := taggedQuestion("History", 0)

	answers := model.AnswerMap{
		geo1.ID.String(): selected(0),
		his1.ID.String(): selected(0),
	}

	got := rankTopicsByAccuracy([]model.Question{geo1, geo2, his1}, answers)
	want := []string{"History", "Geometry"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranking = %v, want %v", got, want)
	}
}

func TestRankTopicsByAccuracySubQuestions(t *testing.T) {
	passage := model.Question{
		ID:           uuid.New(),
		QuestionType: model.QuestionTypeReadingComprehension,
		Topic:        "Comprehension",
		SubQuestions: []model.SubQuestion{
			{ID: "a", Options: []string{"x", "y"}, CorrectIndex: 0},
			{ID: "b", Options: []string{"x", "y"}, CorrectIndex: 1},
		},
	}
	vocab := taggedQuestion("Vocabulary", 1)

	answers := model.AnswerMap{
		passage.ID.String(): {Sub: map[string]int{"a": 0, "b": 0}},
		vocab.ID.String():   selected(1),
	}

	got := rankTopicsByAccuracy([]model.Question{passage, vocab}, answers)
	want := []string{"Vocabulary", "Comprehension"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranking = %v, want %v", got, want)
	}
}

func TestRankTopicsByAccuracyTieAndUntagged(t *testing.T) {
	b := taggedQuestion("Biology", 0)
	a := taggedQuestion("Arithmetic", 0)
	untagged := taggedQuestion("", 0)

	answers := model.AnswerMap{
		b.ID.String():        selected(0),
		a.ID.String():        selected(0),
		untagged.ID.String(): selected(1),
	}

	got := rankTopicsByAccuracy([]model.Question{b, a, untagged}, answers)
	want := []string{"Arithmetic", "Biology"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranking = %v, want %v", got, want)
	}
}
