package middleware

import (
	"net/http"
	"sync"

	"go-salescrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const codeRateLimited = "RATE_LIMITED"

// limiterPool hands out one token bucket per key (client IP or user id).
// Buckets are never evicted; the key space is small enough in practice.
type limiterPool struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newLimiterPool(r rate.Limit, burst int) *limiterPool {
	return &limiterPool{
		limiters: make(map[string]*rate.Limiter),
		rate:     r,
		burst:    burst,
	}
}

func (p *limiterPool) allow(key string) bool {
	p.mu.Lock()
	limiter, ok := p.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(p.rate, p.burst)
		p.limiters[key] = limiter
	}
	p.mu.Unlock()

	return limiter.Allow()
}

func RateLimitByIP(r rate.Limit, burst int) gin.HandlerFunc {
	pool := newLimiterPool(r, burst)
	return func(c *gin.Context) {
		if !pool.allow(c.ClientIP()) {
			response.Error(c, http.StatusTooManyRequests, codeRateLimited,
				"Too many requests from this IP", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitByUser throttles per authenticated user; unauthenticated
// requests pass through and are left to the IP limiter.
func RateLimitByUser(r rate.Limit, burst int) gin.HandlerFunc {
	pool := newLimiterPool(r, burst)
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}
		if !pool.allow(userID) {
			response.Error(c, http.StatusTooManyRequests, codeRateLimited,
				"Too many requests for this account", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
