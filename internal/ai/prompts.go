package ai

import (
	"fmt"
	"strings"
)

func buildAnalysisPrompt(in AnalysisInput) string {
	var sb strings.Builder
	sb.WriteString("You are a study coach for competitive-exam preparation. A learner just finished a mock test:\n\n")
	sb.WriteString(fmt.Sprintf("CATEGORY: %s\n", in.Category))
	sb.WriteString(fmt.Sprintf("TEST TYPE: %s\n", in.TestType))
	sb.WriteString(fmt.Sprintf("SCORE: %.2f out of %.2f\n", in.Score, in.MaxScore))
	sb.WriteString(fmt.Sprintf("TIME TAKEN: %d seconds\n\n", in.TimeTakenSecs))

	if len(in.StrongTopics) > 0 {
		sb.WriteString("STRONG TOPICS: " + strings.Join(in.StrongTopics, ", ") + "\n")
	}
	if len(in.WeakTopics) > 0 {
		sb.WriteString("WEAK TOPICS: " + strings.Join(in.WeakTopics, ", ") + "\n")
	}

	sb.WriteString("\nINSTRUCTIONS:\n")
	sb.WriteString("- Suggest 3 to 5 concrete topics to revise next, weakest first.\n")
	sb.WriteString("- Write a short encouraging summary of the performance (2-4 sentences).\n")
	sb.WriteString("\nRespond ONLY with a JSON object:\n")
	sb.WriteString(`{"suggested_topics": ["topic", ...], "summary": "<summary>"}`)
	sb.WriteString("\n")

	return sb.String()
}

func buildGenerationPrompt(in GenerationInput) string {
	var sb strings.Builder
	sb.WriteString("You are a question setter for competitive exams. Generate multiple-choice questions.\n\n")
	sb.WriteString(fmt.Sprintf("SECTION: %s\n", in.Section))
	if in.Topic != "" {
		sb.WriteString(fmt.Sprintf("TOPIC: %s\n", in.Topic))
	}
	sb.WriteString(fmt.Sprintf("DIFFICULTY: %s\n", in.Difficulty))
	sb.WriteString(fmt.Sprintf("COUNT: exactly %d questions\n\n", in.Count))

	sb.WriteString("INSTRUCTIONS:\n")
	sb.WriteString("- Each question has 4 options and exactly one correct answer.\n")
	sb.WriteString("- correct_index is the zero-based index of the correct option.\n")
	sb.WriteString("- Include a brief explanation for each question.\n")
	sb.WriteString("\nRespond ONLY with a JSON object:\n")
	sb.WriteString(`{"questions": [{"prompt": "...", "options": ["...", "...", "...", "..."], "correct_index": 0, "subject": "...", "topic": "...", "difficulty": "...", "explanation": "...", "marks": 1}]}`)
	sb.WriteString("\n")

	return sb.String()
}

func buildParsePrompt(rawText string) string {
	var sb strings.Builder
	sb.WriteString("You are a question importer. Parse the raw text below into a structured multiple-choice question. ")
	sb.WriteString("If the correct answer is not marked, make your best guess for correct_index.\n\n")
	sb.WriteString("RAW TEXT:\n" + rawText + "\n")
	sb.WriteString("\nRespond ONLY with a JSON object:\n")
	sb.WriteString(`{"prompt": "...", "options": ["...", "..."], "correct_index": 0, "subject": "...", "topic": "...", "difficulty": "easy|medium|hard", "explanation": "...", "marks": 1}`)
	sb.WriteString("\n")

	return sb.String()
}
