package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"lending_backend/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedisRateLimiter initializes a shared Redis client used by the middleware.
// Provide addr (host:port), password and db index. If connection fails, redisClient remains nil
// and the limiters fall back to in-process counting.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		return
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-process rate limiting", "addr", addr, "error", err)
		_ = client.Close()
		return
	}
	redisClient = client
	logger.Info("redis rate limiter enabled", "addr", addr)
}

// CloseRedis releases the shared client
func CloseRedis() {
	if redisClient != nil {
		_ = redisClient.Close()
		redisClient = nil
	}
}

// RedisRateLimit implements a fixed-window rate limiter using Redis INCR/EXPIRE.
// key format: rl:<scope>:<window_seconds>:<identifier>
func RedisRateLimit(scope string, maxRequests int, window time.Duration) gin.HandlerFunc {
	return redisLimit(scope, maxRequests, window, func(c *gin.Context) (string, bool) {
		return c.ClientIP(), true
	})
}

func redisLimit(scope string, maxRequests int, window time.Duration, ident func(c *gin.Context) (string, bool)) gin.HandlerFunc {
	windowSec := strconv.FormatInt(int64(window.Seconds()), 10)

	return func(c *gin.Context) {
		if redisClient == nil {
			// fallback to allowing requests if Redis not configured
			c.Next()
			return
		}

		id, ok := ident(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		key := "rl:" + scope + ":" + windowSec + ":" + id
		ctx := c.Request.Context()

		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			// on Redis error, fail-open (allow) but set header
			logger.WithContext(ctx).Warn("rate limiter redis error", "error", err)
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}

		if val == 1 {
			// first increment, set expiry
			redisClient.Expire(ctx, key, window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(maxRequests)-val), 10))

		if val > int64(maxRequests) {
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

// RedisEnabled reports whether limiters count in Redis
func RedisEnabled() bool {
	return redisClient != nil
}

// PingRedis checks the limiter's Redis connection
func PingRedis(ctx context.Context) error {
	if redisClient == nil {
		return errors.New("redis not configured")
	}
	return redisClient.Ping(ctx).Err()
}
