package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	start time.Time
	count int
}

// memoryLimiter is the in-process fixed-window limiter used when Redis is not configured
type memoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
}

var localLimiter = &memoryLimiter{clients: make(map[string]*clientInfo)}

// allow counts one hit for key and reports the hits in the current window
func (l *memoryLimiter) allow(key string, window time.Duration, now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	ci, ok := l.clients[key]
	if !ok || now.Sub(ci.start) > window {
		l.clients[key] = &clientInfo{start: now, count: 1}
		l.sweep(window, now)
		return 1
	}
	ci.count++
	return ci.count
}

// sweep drops expired windows; caller holds mu
func (l *memoryLimiter) sweep(window time.Duration, now time.Time) {
	if len(l.clients) < 10000 {
		return
	}
	for k, ci := range l.clients {
		if now.Sub(ci.start) > window {
			delete(l.clients, k)
		}
	}
}

// RateLimit limits requests per client IP within scope. Redis is used when
// configured, otherwise counting happens in process.
func RateLimit(scope string, maxRequests int, window time.Duration) gin.HandlerFunc {
	if maxRequests <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	redisLimit := RedisRateLimit(scope, maxRequests, window)

	return func(c *gin.Context) {
		if redisClient != nil {
			redisLimit(c)
			return
		}

		n := localLimiter.allow(scope+":"+c.ClientIP(), window, time.Now())
		if n > maxRequests {
			RLBlocked.WithLabelValues(scope).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		RLRequests.WithLabelValues(scope).Inc()
		c.Next()
	}
}
