package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/pms-backend/internal/logging"
)

// requestIDKey is the key used to store request ID in context
type requestIDKey struct{}

const RequestIDHeader = "X-Request-Id"

// RequestIDMiddleware ensures every request has a stable request ID.
// - Reads X-Request-Id header if present, otherwise generates a UUID
// - Stores it in the Gin context and the request context
// - Attaches a logger carrying the id to the request context
// - Logs method, path, status and latency once the request completes
func RequestIDMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)
		reqLog := log.With(zap.String("request_id", rid))
		ctx := context.WithValue(c.Request.Context(), requestIDKey{}, rid)
		ctx = logging.NewContext(ctx, reqLog)
		c.Request = c.Request.WithContext(ctx)

		c.Writer.Header().Set(RequestIDHeader, rid)

		start := time.Now()
		c.Next()

		reqLog.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// GetRequestID extracts the request ID from a standard context
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}
