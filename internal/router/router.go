package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prepzone/prepzone-backend/internal/config"
	"github.com/prepzone/prepzone-backend/internal/handler"
	"github.com/prepzone/prepzone-backend/internal/middleware"
	"github.com/prepzone/prepzone-backend/internal/response"
	"github.com/prepzone/prepzone-backend/internal/service"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Catalog     *handler.CatalogHandler
	Attempt     *handler.AttemptHandler
	Result      *handler.ResultHandler
	Leaderboard *handler.LeaderboardHandler
	AI          *handler.AIHandler
	Exam        *handler.ExamHandler
	Question    *handler.QuestionHandler
	User        *handler.UserHandler
	Dashboard   *handler.DashboardHandler
	WS          *handler.WSHandler
}

// New assembles the Gin engine with all routes and middleware.
func New(cfg *config.Config, authService *service.AuthService, h Handlers) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		// Dev default. Production sets ALLOWED_ORIGINS.
		corsCfg.AllowCredentials = false
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Use(response.RequestIDMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	aiLimiter := middleware.NewRateLimiter(5, time.Minute)

	api := r.Group("/api/v1")

	// Public
	auth := api.Group("/auth", authLimiter.Middleware())
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	catalog := api.Group("/catalog")
	{
		catalog.GET("/categories", h.Catalog.ListCategories)
		catalog.GET("/exams", h.Catalog.ListExams)
		catalog.GET("/exams/:exam_id", h.Catalog.GetExam)
	}

	api.GET("/leaderboard", h.Leaderboard.Global)
	api.GET("/leaderboard/:category", h.Leaderboard.ByCategory)
	api.GET("/categories/:category/stats", h.Leaderboard.CategoryStats)

	// Student (JWT + single-device session)
	student := api.Group("",
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		student.GET("/me", h.Auth.Me)
		student.POST("/auth/logout", h.Auth.Logout)

		student.POST("/attempts/:exam_id/start", h.Attempt.Start)
		student.GET("/attempts/:exam_id/state", h.Attempt.GetState)
		student.POST("/attempts/:exam_id/autosave", h.Attempt.Autosave)
		student.POST("/attempts/:exam_id/submit", h.Attempt.Submit)

		student.GET("/results", h.Result.ListMine)
		student.GET("/results/:result_id", h.Result.Get)
		student.GET("/results/:result_id/export", h.Result.ExportText)
		student.POST("/results/:result_id/analyze", aiLimiter.Middleware(), h.AI.AnalyzeResult)
	}

	// Live attempt stream authenticates via ?token= on the upgrade request.
	api.GET("/ws/attempts/:exam_id",
		middleware.RequireStudentWSAuth(authService),
		h.WS.AttemptStream,
	)

	// Admin
	admin := api.Group("/admin", middleware.RequireAdminJWT(authService))
	{
		admin.GET("/dashboard", h.Dashboard.Overview)

		admin.GET("/exams", h.Exam.List)
		admin.POST("/exams", h.Exam.Create)
		admin.GET("/exams/:exam_id", h.Exam.Get)
		admin.PATCH("/exams/:exam_id", h.Exam.Update)
		admin.DELETE("/exams/:exam_id", h.Exam.Delete)
		admin.POST("/exams/:exam_id/publish", h.Exam.Publish)
		admin.POST("/exams/:exam_id/archive", h.Exam.Archive)
		admin.GET("/exams/:exam_id/results", h.Exam.Results)

		admin.GET("/exams/:exam_id/questions", h.Question.List)
		admin.POST("/exams/:exam_id/questions", h.Question.Add)
		admin.PUT("/exams/:exam_id/questions", h.Question.ReplaceAll)
		admin.PUT("/exams/:exam_id/questions/:question_id", h.Question.Update)
		admin.DELETE("/exams/:exam_id/questions/:question_id", h.Question.Delete)

		admin.POST("/exams/:exam_id/ai/generate", aiLimiter.Middleware(), h.AI.GenerateQuestions)
		admin.POST("/ai/parse-question", aiLimiter.Middleware(), h.AI.ParseQuestion)

		admin.GET("/users", h.User.List)
		admin.POST("/users", h.User.Create)
		admin.PATCH("/users/:user_id", h.User.Update)
		admin.DELETE("/users/:user_id", h.User.Delete)
	}

	return r
}
