// Package scoring implements the deterministic grading core: turning a
// finished attempt into an ExamResult, and folding result sets into
// leaderboard and category projections. Everything here is pure — no I/O,
// no clocks, no persistence.
package scoring

import (
	"errors"
	"fmt"

	"github.com/prepzone/prepzone-backend/internal/model"
)

// ErrValidation reports malformed or inconsistent scoring input. A scoring
// run that fails validation produces no result at all — a partially scored
// exam is worse than none.
var ErrValidation = errors.New("scoring validation failed")

// unit is one scoreable item: a standard question or a single
// reading-comprehension sub-question.
type unit struct {
	section  string
	marks    float64
	answered bool
	correct  bool
}

// Score grades a finished attempt against the exam definition and its
// ordered question list.
//
// Classification per unit: Correct (answer present and equal to the correct
// option index), Incorrect (present and different), Unanswered (absent).
// Contribution: +marks, -exam.NegativeMark, 0 respectively. Sectional
// subtotals are summed exactly per section, never prorated. Counts are in
// units, so a reading-comprehension passage contributes one unit per
// sub-question.
//
// The returned result carries no identity or timestamp; the caller owns
// persistence. Identical input always yields an identical result.
func Score(exam *model.Exam, questions []model.Question, answers model.AnswerMap, elapsedSeconds int) (*model.ExamResult, error) {
	if exam == nil {
		return nil, fmt.Errorf("%w: exam is nil", ErrValidation)
	}

	units, err := collectUnits(exam, questions, answers)
	if err != nil {
		return nil, err
	}

	// Exact per-section subtotals, in the exam's declared section order.
	sections := make([]model.SectionResult, len(exam.Sections))
	index := make(map[string]int, len(exam.Sections))
	for i, s := range exam.Sections {
		sections[i] = model.SectionResult{Name: s.Name}
		index[s.Name] = i
	}

	for _, u := range units {
		sec := &sections[index[u.section]]
		sec.MaxScore += u.marks
		switch {
		case !u.answered:
			sec.Unattempted++
		case u.correct:
			sec.Attempted++
			sec.Correct++
			sec.Score += u.marks
		default:
			sec.Attempted++
			sec.Incorrect++
			sec.Score -= exam.NegativeMark
		}
	}

	result := &model.ExamResult{
		ExamID:        exam.ID,
		ExamTitle:     exam.Title,
		Category:      exam.Category,
		TimeTakenSecs: elapsedSeconds,
	}

	for i := range sections {
		sec := &sections[i]
		sec.Accuracy = percentage(sec.Correct, sec.Correct+sec.Incorrect)
		cutoff := exam.Sections[i].Cutoff
		sec.Qualified = cutoff == nil || sec.Score >= *cutoff

		result.Score += sec.Score
		result.MaxScore += sec.MaxScore
		result.Attempted += sec.Attempted
		result.Correct += sec.Correct
		result.Incorrect += sec.Incorrect
		result.Unanswered += sec.Unattempted
	}

	result.TotalQuestions = result.Attempted + result.Unanswered
	result.Accuracy = percentage(result.Correct, result.Correct+result.Incorrect)
	result.Qualified = exam.OverallCutoff == nil || result.Score >= *exam.OverallCutoff
	result.Sections = sections

	return result, nil
}

// collectUnits flattens questions into scoreable units, validating that
// every answer references a known question/sub-question and that each
// section's declared question count matches the tagged questions.
func collectUnits(exam *model.Exam, questions []model.Question, answers model.AnswerMap) ([]unit, error) {
	known := make(map[string]*model.Question, len(questions))
	perSection := make(map[string]int, len(exam.Sections))

	for i := range questions {
		q := &questions[i]
		if exam.SectionByName(q.Section) == nil {
			return nil, fmt.Errorf("%w: question %s tagged with unknown section %q", ErrValidation, q.ID, q.Section)
		}
		known[q.ID.String()] = q
		perSection[q.Section]++
	}

	for _, s := range exam.Sections {
		if got := perSection[s.Name]; got != s.QuestionCount {
			return nil, fmt.Errorf("%w: section %q declares %d questions, found %d", ErrValidation, s.Name, s.QuestionCount, got)
		}
	}

	for qid, ans := range answers {
		q, ok := known[qid]
		if !ok {
			return nil, fmt.Errorf("%w: answer references unknown question %s", ErrValidation, qid)
		}
		if q.QuestionType == model.QuestionTypeReadingComprehension {
			if ans.Selected != nil {
				return nil, fmt.Errorf("%w: question %s expects sub-question answers", ErrValidation, qid)
			}
			for sqid := range ans.Sub {
				if !hasSubQuestion(q, sqid) {
					return nil, fmt.Errorf("%w: answer references unknown sub-question %s of question %s", ErrValidation, sqid, qid)
				}
			}
		} else {
			if len(ans.Sub) > 0 {
				return nil, fmt.Errorf("%w: question %s does not have sub-questions", ErrValidation, qid)
			}
			if ans.Selected == nil {
				return nil, fmt.Errorf("%w: answer for question %s carries no selection", ErrValidation, qid)
			}
		}
	}

	var units []unit
	for i := range questions {
		q := &questions[i]
		ans, answered := answers[q.ID.String()]

		if q.QuestionType == model.QuestionTypeReadingComprehension {
			for _, sq := range q.SubQuestions {
				u := unit{section: q.Section, marks: sq.Marks}
				if answered {
					if sel, ok := ans.Sub[sq.ID]; ok {
						u.answered = true
						u.correct = sel == sq.CorrectIndex
					}
				}
				units = append(units, u)
			}
			continue
		}

		u := unit{section: q.Section, marks: q.Marks}
		if answered {
			u.answered = true
			u.correct = *ans.Selected == q.CorrectIndex
		}
		units = append(units, u)
	}

	return units, nil
}

func hasSubQuestion(q *model.Question, id string) bool {
	for _, sq := range q.SubQuestions {
		if sq.ID == id {
			return true
		}
	}
	return false
}

// percentage returns part/whole × 100, defined as 0 when whole is 0.
func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
