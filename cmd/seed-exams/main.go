package main

import (
	"context"
	"fmt"

	"github.com/prepzone/prepzone-backend/internal/config"
	"github.com/prepzone/prepzone-backend/internal/database"
	"github.com/prepzone/prepzone-backend/internal/logger"
	"github.com/prepzone/prepzone-backend/internal/model"
	"github.com/prepzone/prepzone-backend/internal/repository"
	"github.com/prepzone/prepzone-backend/internal/service"
)

// Seeds one ready-to-take mock exam for local development.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	examRepo := repository.NewExamRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	examService := service.NewExamService(examRepo, questionRepo, rdb)
	questionService := service.NewQuestionService(questionRepo, examRepo)

	cutoffA := 2.0
	overall := 5.0
	exam, err := examService.Create(ctx, 0, &model.CreateExamRequest{
		Title:       "SSC CGL Practice Set 1",
		Category:    "SSC",
		SubCategory: "CGL",
		Sections: []model.Section{
			{Name: "Quantitative Aptitude", QuestionCount: 3, MarksPerQuestion: 2, Cutoff: &cutoffA},
			{Name: "General Awareness", QuestionCount: 2, MarksPerQuestion: 1},
		},
		DurationMinutes: 30,
		NegativeMark:    0.5,
		OverallCutoff:   &overall,
		IsFree:          true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create exam")
	}

	questions := []model.AddQuestionRequest{
		{
			Section: "Quantitative Aptitude", QuestionType: "STANDARD",
			Prompt:  "What is 15% of 240?",
			Options: []string{"30", "36", "40", "42"}, CorrectIndex: 1,
			Subject: "Arithmetic", Topic: "Percentages", Difficulty: "easy",
			Explanation: "15% of 240 = 0.15 x 240 = 36.", OrderNum: 1,
		},
		{
			Section: "Quantitative Aptitude", QuestionType: "STANDARD",
			Prompt:  "A train covers 180 km in 2.5 hours. What is its average speed?",
			Options: []string{"68 km/h", "70 km/h", "72 km/h", "75 km/h"}, CorrectIndex: 2,
			Subject: "Arithmetic", Topic: "Speed and Distance", Difficulty: "medium",
			OrderNum: 2,
		},
		{
			Section: "Quantitative Aptitude", QuestionType: "STANDARD",
			Prompt:  "If x + 1/x = 4, what is x^2 + 1/x^2?",
			Options: []string{"12", "14", "16", "18"}, CorrectIndex: 1,
			Subject: "Algebra", Topic: "Identities", Difficulty: "medium",
			OrderNum: 3,
		},
		{
			Section: "General Awareness", QuestionType: "STANDARD",
			Prompt:  "Which river is known as the Sorrow of Bengal?",
			Options: []string{"Ganga", "Damodar", "Hooghly", "Teesta"}, CorrectIndex: 1,
			Subject: "Geography", Topic: "Rivers", Difficulty: "easy",
			OrderNum: 4,
		},
		{
			Section: "General Awareness", QuestionType: "STANDARD",
			Prompt:  "Who wrote the book 'Discovery of India'?",
			Options: []string{"Mahatma Gandhi", "Jawaharlal Nehru", "Rabindranath Tagore", "B. R. Ambedkar"}, CorrectIndex: 1,
			Subject: "History", Topic: "Modern India", Difficulty: "easy",
			OrderNum: 5,
		},
	}

	for i := range questions {
		if _, err := questionService.Add(ctx, exam.ID, &questions[i]); err != nil {
			log.Fatal().Err(err).Int("question", i+1).Msg("Failed to add question")
		}
	}

	if _, err := examService.Publish(ctx, exam.ID); err != nil {
		log.Fatal().Err(err).Msg("Failed to publish exam")
	}

	fmt.Printf("Seeded exam %q (%s) with %d questions\n", exam.Title, exam.ID, len(questions))
}
