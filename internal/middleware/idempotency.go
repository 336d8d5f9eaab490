package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"go-salescrm/internal/shared/apperror"
	"go-salescrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyLockTTL  = 30 * time.Second
	idempotencyReplyTTL = 24 * time.Hour
)

// bodyCapture tees everything the handler writes so a successful response
// can be cached for replay.
type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency makes POSTs carrying an Idempotency-Key header safe to retry.
// A finished request replays its cached response verbatim; a concurrent
// duplicate is rejected with 409 while the first request holds the lock.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString("user_id_validated")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		if cached, err := rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			c.Abort()
			return
		}

		// Short-lived lock; a crashed server releases it by expiry.
		acquired, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLockTTL).Result()
		if !acquired {
			response.Error(c, http.StatusConflict, apperror.CodeConflict,
				"A request with this idempotency key is still being processed", nil)
			c.Abort()
			return
		}

		capture := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = capture

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			_ = rdb.Set(c.Request.Context(), cacheKey, capture.buf.String(), idempotencyReplyTTL).Err()
		}
		_ = rdb.Del(c.Request.Context(), lockKey).Err()
	}
}
