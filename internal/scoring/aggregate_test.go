package scoring

import (
	"math/rand"
	"testing"

	"github.com/prepzone/prepzone-backend/internal/model"
)

func TestLeaderboardOrdering(t *testing.T) {
	results := []model.ExamResult{
		{UserID: 1, Score: 50},
		{UserID: 2, Score: 30},
		{UserID: 2, Score: 30},
		{UserID: 3, Score: 60},
		{UserID: 1, Score: 10},
	}

	entries := Leaderboard(results)
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}

	// user 1 and 3: 60 points each; user 1 took 2 exams, user 3 took 1,
	// so user 3 ranks first on the fewer-exams tie-break.
	if entries[0].UserID != 3 || entries[0].Points != 60 || entries[0].ExamsTaken != 1 {
		t.Errorf("first = %+v, want user 3 with 60 points over 1 exam", entries[0])
	}
	if entries[1].UserID != 1 || entries[1].Points != 60 {
		t.Errorf("second = %+v, want user 1 with 60 points", entries[1])
	}
	if entries[2].UserID != 2 || entries[2].Points != 60 {
		t.Errorf("third = %+v, want user 2 with 60 points", entries[2])
	}
}

func TestLeaderboardTieBreakByUserID(t *testing.T) {
	results := []model.ExamResult{
		{UserID: 9, Score: 20},
		{UserID: 4, Score: 20},
	}
	entries := Leaderboard(results)
	if entries[0].UserID != 4 || entries[1].UserID != 9 {
		t.Errorf("equal points and exam counts should order by user id: got %d, %d",
			entries[0].UserID, entries[1].UserID)
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	if entries := Leaderboard(nil); len(entries) != 0 {
		t.Errorf("empty result set should yield no entries, got %d", len(entries))
	}
}

// TestLeaderboardSumProperty checks, over randomized result sets, that each
// user's points equal the sum of exactly that user's scores and that input
// ordering does not affect the projection.
func TestLeaderboardSumProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(40) + 1
		results := make([]model.ExamResult, n)
		expected := make(map[int]float64)
		counts := make(map[int]int)

		for i := range results {
			userID := rng.Intn(8) + 1
			score := float64(rng.Intn(400))/4 - 10 // negative marking can go below zero
			results[i] = model.ExamResult{UserID: userID, Score: score}
			expected[userID] += score
			counts[userID]++
		}

		entries := Leaderboard(results)
		if len(entries) != len(expected) {
			t.Fatalf("trial %d: %d entries, want %d", trial, len(entries), len(expected))
		}
		for _, e := range entries {
			if e.Points != expected[e.UserID] {
				t.Errorf("trial %d: user %d points = %v, want %v", trial, e.UserID, e.Points, expected[e.UserID])
			}
			if e.ExamsTaken != counts[e.UserID] {
				t.Errorf("trial %d: user %d exams = %d, want %d", trial, e.UserID, e.ExamsTaken, counts[e.UserID])
			}
		}

		// Shuffle and recompute: projection must be order-independent.
		rng.Shuffle(n, func(i, j int) { results[i], results[j] = results[j], results[i] })
		again := Leaderboard(results)
		for i := range entries {
			if entries[i] != again[i] {
				t.Fatalf("trial %d: ordering-dependent leaderboard at rank %d: %+v vs %+v",
					trial, i, entries[i], again[i])
			}
		}
	}
}

func TestComputeCategoryStats(t *testing.T) {
	results := []model.ExamResult{
		{Category: "Banking", ExamTitle: "IBPS Clerk Mock 1", Score: 40},
		{Category: "Banking", ExamTitle: "IBPS PO Mock 2", Score: 55},
		{Category: "SSC", ExamTitle: "CGL Tier 1", Score: 90},
		{Category: "Banking", ExamTitle: "RBI Assistant", Score: 25},
	}

	stats := ComputeCategoryStats(results, "Banking")
	if !stats.HasData {
		t.Fatal("HasData should be true")
	}
	if stats.ResultCount != 3 {
		t.Errorf("ResultCount = %d, want 3", stats.ResultCount)
	}
	if stats.AverageScore != 40 {
		t.Errorf("AverageScore = %v, want 40", stats.AverageScore)
	}
	if stats.HighestScore != 55 || stats.TopExamTitle != "IBPS PO Mock 2" {
		t.Errorf("top = %v via %q, want 55 via IBPS PO Mock 2", stats.HighestScore, stats.TopExamTitle)
	}
}

func TestComputeCategoryStatsEmpty(t *testing.T) {
	results := []model.ExamResult{{Category: "SSC", Score: 10}}

	stats := ComputeCategoryStats(results, "Railways")
	if stats.HasData {
		t.Error("HasData should be false for an empty filtered set")
	}
	if stats.AverageScore != 0 || stats.HighestScore != 0 || stats.ResultCount != 0 {
		t.Errorf("empty stats should be zero-valued: %+v", stats)
	}
}

func TestComputeCategoryStatsTopTieBreak(t *testing.T) {
	results := []model.ExamResult{
		{Category: "SSC", ExamTitle: "Mock B", Score: 70},
		{Category: "SSC", ExamTitle: "Mock A", Score: 70},
	}
	stats := ComputeCategoryStats(results, "SSC")
	if stats.TopExamTitle != "Mock A" {
		t.Errorf("TopExamTitle = %q, want lexically smaller Mock A", stats.TopExamTitle)
	}
}
