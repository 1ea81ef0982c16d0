package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger logs one line per request. Server errors log at error, client errors at warn,
// health checks at debug.
func Logger(l *zap.Logger, name string) gin.HandlerFunc {
	if l == nil {
		panic("middleware.Logger received a nil *zap.Logger")
	}
	logger := l.Named(name)

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("type", "http_request"),
			zap.String("http_method", c.Request.Method),
			zap.String("http_path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.String("remote_addr", c.ClientIP()),
			zap.Int("http_status_code", status),
			zap.Int("response_bytes", c.Writer.Size()),
			zap.Duration("latency", time.Since(start)),
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			fields = append(fields, zap.String("errors", errs.String()))
		}

		msg := fmt.Sprintf("HTTP request completed: %s", c.Request.URL.Path)
		switch {
		case status >= 500:
			logger.Error(msg, fields...)
		case status >= 400:
			logger.Warn(msg, fields...)
		case isHealthCheck(c.Request.Method, c.Request.URL.Path):
			logger.Debug(msg, fields...)
		default:
			logger.Info(msg, fields...)
		}
	}
}

func isHealthCheck(method, path string) bool {
	return method == http.MethodGet && path == "/health"
}
