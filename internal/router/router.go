package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/garudacbt/cbt-backend/internal/config"
	"github.com/garudacbt/cbt-backend/internal/handler"
	"github.com/garudacbt/cbt-backend/internal/middleware"
	"github.com/garudacbt/cbt-backend/internal/response"
	"github.com/garudacbt/cbt-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	ExamPortal  *handler.ExamPortalHandler
	Participant *handler.ParticipantHandler
	Agenda      *handler.AgendaHandler
	Subject     *handler.SubjectHandler
	Question    *handler.QuestionHandler
	Result      *handler.ResultHandler
	Dashboard   *handler.DashboardHandler
	Media       *handler.MediaHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", "./uploads")
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/participant/login", handlers.Auth.ParticipantLogin)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.POST("/participant/logout", middleware.RequireParticipantJWT(authService), handlers.Auth.Logout)
		auth.GET("/participant/me", middleware.RequireParticipantJWT(authService), handlers.Auth.GetParticipantProfile)
		auth.POST("/admin/logout", middleware.RequireAdminJWT(authService), handlers.Auth.Logout)
	}

	// ─── 2. Exam Group (Participant JWT) ───────────────────────────────
	examAPI := router.Group("/api/v1/exam")
	examAPI.Use(middleware.RequireParticipantJWT(authService))
	{
		examAPI.GET("/agendas", handlers.ExamPortal.ListAgendas)
		examAPI.POST("/agendas/:agenda_id/unlock", handlers.ExamPortal.UnlockAgenda)
		examAPI.POST("/subjects/:subject_id/start", handlers.ExamPortal.StartSubject)
		examAPI.GET("/sessions/:session_id/state", handlers.ExamPortal.GetSessionState)
		examAPI.POST("/sessions/:session_id/answers", handlers.ExamPortal.SubmitAnswer)
		examAPI.POST("/sessions/:session_id/finish", handlers.ExamPortal.FinishSession)
	}

	// ─── 3. WebSocket Group (Participant WS Auth) ──────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireParticipantWSAuth(authService))
	{
		ws.GET("/exam/sessions/:session_id/stream", handlers.WS.SessionStream)
	}

	// ─── 4. Admin Group (Admin JWT) ────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Dashboard
		adminAPI.GET("/dashboard", handlers.Dashboard.GetSummary)

		// Media upload
		adminAPI.POST("/media/upload", handlers.Media.UploadMedia)

		// Participant management
		participantsGroup := adminAPI.Group("/participants")
		{
			participantsGroup.GET("", handlers.Participant.ListParticipants)
			participantsGroup.POST("", handlers.Participant.CreateParticipant)
			participantsGroup.DELETE("", handlers.Participant.DeleteAllParticipants)
			participantsGroup.POST("/import", handlers.Participant.ImportParticipants)
			participantsGroup.GET("/export", handlers.Participant.ExportParticipants)
			participantsGroup.GET("/:id", handlers.Participant.GetParticipant)
			participantsGroup.PUT("/:id", handlers.Participant.UpdateParticipant)
			participantsGroup.DELETE("/:id", handlers.Participant.DeleteParticipant)
		}

		// Agenda management
		agendasGroup := adminAPI.Group("/agendas")
		{
			agendasGroup.GET("", handlers.Agenda.ListAgendas)
			agendasGroup.POST("", handlers.Agenda.CreateAgenda)
			agendasGroup.GET("/:id", handlers.Agenda.GetAgenda)
			agendasGroup.PUT("/:id", handlers.Agenda.UpdateAgenda)
			agendasGroup.DELETE("/:id", handlers.Agenda.DeleteAgenda)
		}

		// Subject management and per-subject question bulk routes
		subjectsGroup := adminAPI.Group("/subjects")
		{
			subjectsGroup.GET("", handlers.Subject.ListSubjects)
			subjectsGroup.POST("", handlers.Subject.CreateSubject)
			subjectsGroup.GET("/:subject_id", handlers.Subject.GetSubject)
			subjectsGroup.PUT("/:subject_id", handlers.Subject.UpdateSubject)
			subjectsGroup.DELETE("/:subject_id", handlers.Subject.DeleteSubject)

			subjectsGroup.GET("/:subject_id/questions", handlers.Question.ListQuestions)
			subjectsGroup.DELETE("/:subject_id/questions", handlers.Question.DeleteAllQuestions)
			subjectsGroup.POST("/:subject_id/questions/import", handlers.Question.ImportQuestions)
			subjectsGroup.GET("/:subject_id/questions/export", handlers.Question.ExportQuestions)
		}

		// Question management
		questionsGroup := adminAPI.Group("/questions")
		{
			questionsGroup.POST("", handlers.Question.CreateQuestion)
			questionsGroup.GET("/:id", handlers.Question.GetQuestion)
			questionsGroup.PUT("/:id", handlers.Question.UpdateQuestion)
			questionsGroup.DELETE("/:id", handlers.Question.DeleteQuestion)
		}

		// Exam results
		resultsGroup := adminAPI.Group("/results")
		{
			resultsGroup.GET("", handlers.Result.ListResults)
			resultsGroup.GET("/:id", handlers.Result.GetResult)
			resultsGroup.DELETE("/:id", handlers.Result.DeleteResult)
		}
	}

	return router
}
