package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/brainsync-backend/internal/platform/ctxutil"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

const aiProviderKey = "brainsync.ai_provider"

// healthPaths are logged at debug so liveness checks and scrapes do not flood the log.
var healthPaths = map[string]bool{"/": true, "/healthcheck": true, "/metrics": true}

// SetAIProvider records which provider answered so RequestLogger can report it.
func SetAIProvider(c *gin.Context, provider string) {
	if provider != "" {
		c.Set(aiProviderKey, provider)
	}
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	log = log.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
			fields = append(fields, "trace_id", td.TraceID, "request_id", td.RequestID)
		}
		if owner := ctxutil.OwnerID(c.Request.Context()); owner != uuid.Nil {
			fields = append(fields, "user_id", owner.String())
		}
		if p := c.GetString(aiProviderKey); p != "" {
			fields = append(fields, "ai_provider", p)
		}
		if last := c.Errors.Last(); last != nil {
			fields = append(fields, "error", last.Error())
		}

		switch {
		case status >= 500:
			log.Error("request failed", fields...)
		case status >= 400:
			log.Warn("request rejected", fields...)
		case healthPaths[route]:
			log.Debug("health check", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
