package middleware

import (
	"go-salescrm/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID adopts the caller's X-Request-ID or mints one, then makes it
// available everywhere a log line might need it: the gin context, the
// request context, and the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)
		c.Header("X-Request-ID", rid)
		c.Request = c.Request.WithContext(
			contextutil.WithRequestID(c.Request.Context(), rid),
		)

		c.Next()
	}
}
