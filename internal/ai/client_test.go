package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeCompletionServer returns an OpenAI-compatible endpoint whose chat
// completions always answer with the given message content.
func fakeCompletionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		resp := map[string]interface{}{
			"id":     "cmpl-test",
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestAnalyzePerformance(t *testing.T) {
	out := AnalysisOutput{
		SuggestedTopics: []string{"Data Interpretation"},
		Summary:         "Focus on DI sets under time pressure.",
	}
	content, _ := json.Marshal(out)

	srv := fakeCompletionServer(t, string(content))
	defer srv.Close()

	c := New(srv.URL, "test-key", "test-model")
	got, err := c.AnalyzePerformance(context.Background(), AnalysisInput{Category: "Banking"})
	if err != nil {
		t.Fatalf("AnalyzePerformance() error = %v", err)
	}
	if got.Summary != out.Summary || len(got.SuggestedTopics) != 1 {
		t.Errorf("AnalyzePerformance() = %+v, want %+v", got, out)
	}
}

func TestAnalyzePerformanceMalformedOutput(t *testing.T) {
	srv := fakeCompletionServer(t, "not json at all")
	defer srv.Close()

	c := New(srv.URL, "test-key", "test-model")
	_, err := c.AnalyzePerformance(context.Background(), AnalysisInput{Category: "SSC"})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("error = %v, want ErrGenerationFailed", err)
	}
}

func TestGenerateQuestionsCountMismatch(t *testing.T) {
	content, _ := json.Marshal(map[string]interface{}{
		"questions": []GeneratedQuestion{
			{Prompt: "2+2?", Options: []string{"3", "4"}, CorrectIndex: 1, Marks: 1},
		},
	})
	srv := fakeCompletionServer(t, string(content))
	defer srv.Close()

	c := New(srv.URL, "test-key", "test-model")
	_, err := c.GenerateQuestions(context.Background(), GenerationInput{
		Section: "Quant", Difficulty: "easy", Count: 3,
	})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("error = %v, want ErrGenerationFailed", err)
	}
}

func TestParseQuestionProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", "test-model")
	_, err := c.ParseQuestion(context.Background(), "Q. Capital of France? a) Berlin b) Paris")
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("error = %v, want ErrGenerationFailed", err)
	}
}

func TestBuildAnalysisPrompt(t *testing.T) {
	in := AnalysisInput{
		Category:      "Banking",
		TestType:      "Sectional",
		Score:         42.5,
		MaxScore:      100,
		TimeTakenSecs: 1800,
		StrongTopics:  []string{"Simplification"},
		WeakTopics:    []string{"Data Interpretation", "Syllogisms"},
	}

	prompt := buildAnalysisPrompt(in)
	for _, want := range []string{"Banking", "Sectional", "42.50", "1800 seconds", "Data Interpretation", "suggested_topics"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt should contain %q", want)
		}
	}

	t.Run("no topics", func(t *testing.T) {
		prompt := buildAnalysisPrompt(AnalysisInput{Category: "SSC"})
		if strings.Contains(prompt, "STRONG TOPICS") || strings.Contains(prompt, "WEAK TOPICS") {
			t.Error("topic sections should be omitted when empty")
		}
	})
}

func TestBuildGenerationPrompt(t *testing.T) {
	prompt := buildGenerationPrompt(GenerationInput{
		Section:    "Quantitative Aptitude",
		Topic:      "Percentages",
		Difficulty: "medium",
		Count:      5,
	})
	for _, want := range []string{"Quantitative Aptitude", "Percentages", "medium", "exactly 5 questions", "correct_index"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt should contain %q", want)
		}
	}

	t.Run("no topic", func(t *testing.T) {
		prompt := buildGenerationPrompt(GenerationInput{Section: "Reasoning", Difficulty: "hard", Count: 3})
		if strings.Contains(prompt, "TOPIC:") {
			t.Error("topic line should be omitted when empty")
		}
	})
}

func TestBuildParsePrompt(t *testing.T) {
	raw := "Q. Capital of France?\na) Berlin b) Paris c) Rome d) Madrid\nAns: b"
	prompt := buildParsePrompt(raw)
	if !strings.Contains(prompt, raw) {
		t.Error("prompt should embed the raw text")
	}
	if !strings.Contains(prompt, "best guess") {
		t.Error("prompt should instruct best-guess behavior")
	}
}

func TestValidateGenerated(t *testing.T) {
	valid := func() GeneratedQuestion {
		return GeneratedQuestion{
			Prompt:       "2+2?",
			Options:      []string{"3", "4", "5", "6"},
			CorrectIndex: 1,
			Marks:        1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*GeneratedQuestion)
		wantErr bool
	}{
		{"valid", func(q *GeneratedQuestion) {}, false},
		{"empty prompt", func(q *GeneratedQuestion) { q.Prompt = "" }, true},
		{"one option", func(q *GeneratedQuestion) { q.Options = []string{"4"} }, true},
		{"seven options", func(q *GeneratedQuestion) {
			q.Options = []string{"1", "2", "3", "4", "5", "6", "7"}
		}, true},
		{"index out of range", func(q *GeneratedQuestion) { q.CorrectIndex = 4 }, true},
		{"negative index", func(q *GeneratedQuestion) { q.CorrectIndex = -1 }, true},
		{"negative marks", func(q *GeneratedQuestion) { q.Marks = -2 }, true},
		{"zero marks defaulted", func(q *GeneratedQuestion) { q.Marks = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid()
			tt.mutate(&q)
			err := validateGenerated(&q)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateGenerated() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.name == "zero marks defaulted" && q.Marks != 1 {
				t.Errorf("zero marks should default to 1, got %v", q.Marks)
			}
		})
	}
}
