package app

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apphttp "github.com/yungbote/brainsync-backend/internal/http"
	httpH "github.com/yungbote/brainsync-backend/internal/http/handlers"
	httpMW "github.com/yungbote/brainsync-backend/internal/http/middleware"
	"github.com/yungbote/brainsync-backend/internal/observability"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health *httpH.HealthHandler
	User   *httpH.UserHandler
	Note   *httpH.NoteHandler
	AI     *httpH.AIHandler
	Quiz   *httpH.QuizHandler
}

func wireHandlers(db *gorm.DB, services Services) Handlers {
	return Handlers{
		Health: httpH.NewHealthHandler(db),
		User:   httpH.NewUserHandler(services.Auth),
		Note:   httpH.NewNoteHandler(services.Notes, services.Assistant),
		AI:     httpH.NewAIHandler(services.Assistant),
		Quiz:   httpH.NewQuizHandler(services.Quiz),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	return Middleware{Auth: httpMW.NewAuthMiddleware(log, services.Auth)}
}

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:            log,
		ServiceName:    cfg.ServiceName,
		CORSOrigins:    cfg.CORSOrigins,
		Metrics:        metrics,
		AuthMiddleware: middleware.Auth,
		UserHandler:    handlers.User,
		NoteHandler:    handlers.Note,
		AIHandler:      handlers.AI,
		QuizHandler:    handlers.Quiz,
		HealthHandler:  handlers.Health,
	})
}
