package service

import (
	"testing"

	"github.com/prepzone/prepzone-backend/internal/model"
)

func TestDuplicateSectionName(t *testing.T) {
	tests := []struct {
		name     string
		sections []model.Section
		want     string
	}{
		{
			name: "unique names",
			sections: []model.Section{
				{Name: "Quant", QuestionCount: 10, MarksPerQuestion: 2},
				{Name: "English", QuestionCount: 5, MarksPerQuestion: 1},
			},
		},
		{
			name: "duplicate",
			sections: []model.Section{
				{Name: "Quant", QuestionCount: 10, MarksPerQuestion: 2},
				{Name: "English", QuestionCount: 5, MarksPerQuestion: 1},
				{Name: "Quant", QuestionCount: 5, MarksPerQuestion: 1},
			},
			want: "Quant",
		},
		{
			name: "case sensitive",
			sections: []model.Section{
				{Name: "Quant", QuestionCount: 10, MarksPerQuestion: 2},
				{Name: "quant", QuestionCount: 5, MarksPerQuestion: 1},
			},
		},
		{
			name: "single section",
			sections: []model.Section{
				{Name: "General", QuestionCount: 20, MarksPerQuestion: 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := duplicateSectionName(tt.sections); got != tt.want {
				t.Fatalf("duplicateSectionName = %q, want %q", got, tt.want)
			}
		})
	}
}
