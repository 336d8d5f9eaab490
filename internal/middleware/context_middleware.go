package middleware

import (
	"go-salescrm/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger derives a per-request logger and stashes it in the request
// context so services and repositories can pull it via contextutil without
// knowing about gin. Runs after RequestID; falls back to minting its own id
// when mounted on a chain without it.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		if rid == "" {
			if rid = c.GetHeader("X-Request-ID"); rid == "" {
				rid = uuid.NewString()
			}
			c.Header("X-Request-ID", rid)
		}

		fields := []zap.Field{zap.String("request_id", rid)}
		uid := c.GetString("user_id")
		if uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithUserID(ctx, uid)
		ctx = contextutil.WithLogger(ctx, logger.With(fields...))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
