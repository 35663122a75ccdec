package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a sliding-window per-IP limiter.
type RateLimiter struct {
	max     int
	window  time.Duration
	message string
	ips     map[string][]time.Time
	mu      sync.Mutex
}

// NewRateLimiter allows max requests per IP within the given window.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		max:     max,
		window:  window,
		message: "Too many requests, please try again later",
		ips:     make(map[string][]time.Time),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()
		defer rl.mu.Unlock()

		now := time.Now()
		cutoff := now.Add(-rl.window)
		valid := make([]time.Time, 0, len(rl.ips[ip]))
		for _, t := range rl.ips[ip] {
			if t.After(cutoff) {
				valid = append(valid, t)
			}
		}

		if len(valid) >= rl.max {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": rl.message,
			})
			return
		}

		rl.ips[ip] = append(valid, now)
		c.Next()
	}
}

// NewStrictRateLimiter guards login and booking. Same per-IP window
// mechanism as the global limiter, just a tighter budget, so one hostile
// address can never lock out everyone else.
func NewStrictRateLimiter(max int, window time.Duration) gin.HandlerFunc {
	limiter := &RateLimiter{
		max:     max,
		window:  window,
		message: "Too many attempts from this address, please wait a few minutes",
		ips:     make(map[string][]time.Time),
	}
	return limiter.RateLimit()
}
