package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/brainsync-backend/internal/http/handlers"
	httpMW "github.com/yungbote/brainsync-backend/internal/http/middleware"
	"github.com/yungbote/brainsync-backend/internal/observability"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics

	AuthMiddleware *httpMW.AuthMiddleware

	UserHandler   *httpH.UserHandler
	NoteHandler   *httpH.NoteHandler
	AIHandler     *httpH.AIHandler
	QuizHandler   *httpH.QuizHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api/v1")

	// Users (public)
	if cfg.UserHandler != nil {
		api.POST("/users/register", cfg.UserHandler.Register)
		api.POST("/users/login", cfg.UserHandler.Login)
	}

	protected := api.Group("/")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}

	// Notes
	if cfg.NoteHandler != nil {
		protected.POST("/notes", cfg.NoteHandler.Create)
		protected.GET("/notes", cfg.NoteHandler.List)
		protected.GET("/notes/:id", cfg.NoteHandler.Get)
		protected.PATCH("/notes/:id", cfg.NoteHandler.Update)
		protected.DELETE("/notes/:id", cfg.NoteHandler.Delete)
		protected.POST("/notes/:id/summary", cfg.NoteHandler.Summarize)
	}

	// AI
	if cfg.AIHandler != nil {
		protected.POST("/ai/chat", cfg.AIHandler.Chat)
	}

	// Quiz
	if cfg.QuizHandler != nil {
		protected.POST("/quiz/generate", cfg.QuizHandler.Generate)
		protected.POST("/quiz/submit", cfg.QuizHandler.Submit)
		protected.POST("/quiz/chat", cfg.QuizHandler.Chat)
		protected.GET("/quiz", cfg.QuizHandler.List)
		protected.GET("/quiz/:id", cfg.QuizHandler.Get)
		protected.DELETE("/quiz/:id", cfg.QuizHandler.Delete)
	}

	return r
}
