package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWriteQuestionLineTruncation(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
	}{
		{"ascii", strings.Repeat("what is the value of x ", 10)},
		{"devanagari", strings.Repeat("निम्नलिखित गद्यांश को पढ़िए ", 10)},
		{"mixed", "Solve for θ: " + strings.Repeat("θ² + θ ", 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			writeQuestionLine(&b, 1, tt.prompt, []string{"a", "b"}, 0, nil)
			out := b.String()

			if !utf8.ValidString(out) {
				t.Fatalf("output is not valid UTF-8: %q", out)
			}
			line := strings.SplitN(out, "\n", 2)[0]
			if !strings.HasSuffix(line, "...") {
				t.Fatalf("long prompt was not truncated: %q", line)
			}
			if len(line) > len("Q1. ")+70 {
				t.Fatalf("truncated line too long (%d bytes): %q", len(line), line)
			}
		})
	}
}

func TestWriteQuestionLineShortPromptUntouched(t *testing.T) {
	var b strings.Builder
	writeQuestionLine(&b, 3, "2+2?", []string{"3", "4"}, 1, intPtr(1))
	out := b.String()

	if !strings.Contains(out, "Q3. 2+2?\n") {
		t.Fatalf("prompt altered: %q", out)
	}
	if !strings.Contains(out, "Your answer: 4 | Correct: 4 | correct") {
		t.Fatalf("verdict line wrong: %q", out)
	}
}

func intPtr(v int) *int { return &v }
