package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// NewRateLimiter returns a limiter shared by every client that admits max
// requests per window: a burst of max, refilled evenly over the window.
// max is at least 1 and the refill interval at least a nanosecond, so the
// limit is always finite.
func NewRateLimiter(max int, window time.Duration) *rate.Limiter {
	if max < 1 {
		max = 1
	}
	interval := window / time.Duration(max)
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return rate.NewLimiter(rate.Every(interval), max)
}

// RateLimit rejects requests with 429 once the limiter runs dry.
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.String(http.StatusTooManyRequests, "Too many requests, please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
