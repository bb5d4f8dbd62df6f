package scoring

import (
	"sort"

	"github.com/prepzone/prepzone-backend/internal/model"
)

// LeaderboardEntry is a ranked per-user projection over the result set.
// Name and AvatarURL are filled in by the caller; this package only knows
// about results. Entries are never stored — they are recomputed on demand.
type LeaderboardEntry struct {
	UserID     int     `json:"user_id"`
	Name       string  `json:"name,omitempty"`
	AvatarURL  string  `json:"avatar_url,omitempty"`
	ExamsTaken int     `json:"exams_taken"`
	Points     float64 `json:"points"`
}

// Leaderboard groups results by user, summing scores into points. Ordering
// is points descending; ties break by fewer exams taken, then lower user id,
// so the output is deterministic regardless of input ordering.
func Leaderboard(results []model.ExamResult) []LeaderboardEntry {
	byUser := make(map[int]*LeaderboardEntry)
	for i := range results {
		r := &results[i]
		e, ok := byUser[r.UserID]
		if !ok {
			e = &LeaderboardEntry{UserID: r.UserID}
			byUser[r.UserID] = e
		}
		e.ExamsTaken++
		e.Points += r.Score
	}

	entries := make([]LeaderboardEntry, 0, len(byUser))
	for _, e := range byUser {
		entries = append(entries, *e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		if entries[i].ExamsTaken != entries[j].ExamsTaken {
			return entries[i].ExamsTaken < entries[j].ExamsTaken
		}
		return entries[i].UserID < entries[j].UserID
	})

	return entries
}

// CategoryStats summarizes all results whose exam belongs to one category.
type CategoryStats struct {
	Category     string  `json:"category"`
	HasData      bool    `json:"has_data"`
	ResultCount  int     `json:"result_count"`
	AverageScore float64 `json:"average_score"`
	HighestScore float64 `json:"highest_score"`
	TopExamTitle string  `json:"top_exam_title"`
}

// ComputeCategoryStats filters results by category and computes the mean
// score and the single highest score with the exam that produced it. An
// empty filtered set yields zero values with HasData false — never a
// division by zero. Equal top scores resolve to the lexically smaller exam
// title so the projection is order-independent.
func ComputeCategoryStats(results []model.ExamResult, category string) CategoryStats {
	stats := CategoryStats{Category: category}

	var sum float64
	for i := range results {
		r := &results[i]
		if r.Category != category {
			continue
		}
		stats.ResultCount++
		sum += r.Score

		better := r.Score > stats.HighestScore ||
			(r.Score == stats.HighestScore && (stats.TopExamTitle == "" || r.ExamTitle < stats.TopExamTitle))
		if !stats.HasData || better {
			stats.HighestScore = r.Score
			stats.TopExamTitle = r.ExamTitle
		}
		stats.HasData = true
	}

	if stats.HasData {
		stats.AverageScore = sum / float64(stats.ResultCount)
	}
	return stats
}
