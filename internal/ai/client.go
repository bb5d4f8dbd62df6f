// Package ai adapts an OpenAI-compatible generative model to three
// schema-validated flows: performance analysis, custom exam generation, and
// free-text question parsing. Prompt construction is private and may change
// independently of the input/output schemas; every failure — provider error,
// timeout, malformed output — surfaces as the single ErrGenerationFailed kind.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrGenerationFailed is the single error kind for all AI flow failures.
var ErrGenerationFailed = errors.New("ai generation failed")

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a new AI client. An empty baseURL uses the provider default.
func New(baseURL, apiKey, modelName string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}
}

// AnalysisInput describes one finished attempt for performance analysis.
type AnalysisInput struct {
	Category      string   `json:"category"`
	TestType      string   `json:"test_type"`
	Score         float64  `json:"score"`
	MaxScore      float64  `json:"max_score"`
	TimeTakenSecs int      `json:"time_taken_seconds"`
	StrongTopics  []string `json:"strong_topics"`
	WeakTopics    []string `json:"weak_topics"`
}

// AnalysisOutput is the structured advice returned to the learner.
type AnalysisOutput struct {
	SuggestedTopics []string `json:"suggested_topics"`
	Summary         string   `json:"summary"`
}

// GenerationInput constrains a custom question-generation request.
type GenerationInput struct {
	Section    string `json:"section"`
	Topic      string `json:"topic,omitempty"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// GeneratedQuestion is one question produced by generation or parsing.
type GeneratedQuestion struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Subject      string   `json:"subject,omitempty"`
	Topic        string   `json:"topic,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`
	Explanation  string   `json:"explanation,omitempty"`
	Marks        float64  `json:"marks"`
}

// AnalyzePerformance asks the model for study advice based on a scored
// attempt and the learner's strong/weak topics.
func (c *Client) AnalyzePerformance(ctx context.Context, input AnalysisInput) (*AnalysisOutput, error) {
	raw, err := c.complete(ctx, buildAnalysisPrompt(input), 0.4)
	if err != nil {
		return nil, err
	}

	var out AnalysisOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: parse analysis output: %v", ErrGenerationFailed, err)
	}
	if out.Summary == "" {
		return nil, fmt.Errorf("%w: analysis output missing summary", ErrGenerationFailed)
	}
	return &out, nil
}

// GenerateQuestions produces Count questions matching the requested section,
// topic, and difficulty. The output is schema-validated before it is
// returned; anything off-shape fails the whole call.
func (c *Client) GenerateQuestions(ctx context.Context, input GenerationInput) ([]GeneratedQuestion, error) {
	if input.Count < 1 || input.Count > 50 {
		return nil, fmt.Errorf("%w: question count %d out of range", ErrGenerationFailed, input.Count)
	}

	raw, err := c.complete(ctx, buildGenerationPrompt(input), 0.7)
	if err != nil {
		return nil, err
	}

	var out struct {
		Questions []GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: parse generated questions: %v", ErrGenerationFailed, err)
	}
	if len(out.Questions) != input.Count {
		return nil, fmt.Errorf("%w: requested %d questions, got %d", ErrGenerationFailed, input.Count, len(out.Questions))
	}
	for i := range out.Questions {
		if err := validateGenerated(&out.Questions[i]); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrGenerationFailed, i, err)
		}
	}
	return out.Questions, nil
}

// ParseQuestion turns free-form question text into a structured question
// with a best-guess correct option index.
func (c *Client) ParseQuestion(ctx context.Context, rawText string) (*GeneratedQuestion, error) {
	if rawText == "" {
		return nil, fmt.Errorf("%w: empty input text", ErrGenerationFailed)
	}

	raw, err := c.complete(ctx, buildParsePrompt(rawText), 0.1)
	if err != nil {
		return nil, err
	}

	var q GeneratedQuestion
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return nil, fmt.Errorf("%w: parse question output: %v", ErrGenerationFailed, err)
	}
	if err := validateGenerated(&q); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return &q, nil
}

// complete runs one JSON-mode chat completion and returns the raw content.
func (c *Client) complete(ctx context.Context, systemPrompt string, temperature float32) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: model returned no choices", ErrGenerationFailed)
	}
	return resp.Choices[0].Message.Content, nil
}

// validateGenerated enforces the question shape the rest of the system
// relies on: 2-6 options, correct index in range, positive marks.
func validateGenerated(q *GeneratedQuestion) error {
	if q.Prompt == "" {
		return errors.New("empty prompt")
	}
	if len(q.Options) < 2 || len(q.Options) > 6 {
		return fmt.Errorf("option count %d outside 2-6", len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct index %d out of range for %d options", q.CorrectIndex, len(q.Options))
	}
	if q.Marks == 0 {
		q.Marks = 1
	}
	if q.Marks < 0 {
		return fmt.Errorf("negative marks %v", q.Marks)
	}
	return nil
}
