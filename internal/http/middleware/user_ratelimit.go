package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// UserRateLimit limits requests per authenticated user (not per IP).
// Requires JWT to run before it.
func UserRateLimit(scope string, maxRequests int, window time.Duration) gin.HandlerFunc {
	if maxRequests <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	byUser := func(c *gin.Context) (string, bool) {
		v, ok := c.Get(UserIDKey)
		if !ok {
			return "", false
		}
		id, ok := v.(int64)
		if !ok {
			return "", false
		}
		return "user:" + strconv.FormatInt(id, 10), true
	}
	redisLimitByUser := redisLimit(scope, maxRequests, window, byUser)

	return func(c *gin.Context) {
		if redisClient != nil {
			redisLimitByUser(c)
			return
		}

		id, ok := byUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if localLimiter.allow(scope+":"+id, window, time.Now()) > maxRequests {
			RLBlocked.WithLabelValues(scope).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}
		RLRequests.WithLabelValues(scope).Inc()
		c.Next()
	}
}
