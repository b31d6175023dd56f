package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Integration-style test: runs only if REDIS_ADDR env is set.
func TestRateLimitRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			db = n
		}
	}

	InitRedisRateLimiter(addr, os.Getenv("REDIS_PASSWORD"), db)
	if !RedisEnabled() {
		t.Fatalf("redis at %s not reachable", addr)
	}
	defer CloseRedis()

	if err := PingRedis(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	// unique scope so reruns inside one window do not collide
	scope := "test-" + uuid.NewString()
	limit := 2

	r := gin.New()
	r.GET("/test", RateLimit(scope, limit, 2*time.Second), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	for i := 0; i < limit; i++ {
		res, err := http.Get(srv.URL + "/test")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("request %d: expected 200 got %d", i+1, res.StatusCode)
		}
		want := strconv.Itoa(limit - i - 1)
		if got := res.Header.Get("X-RateLimit-Remaining"); got != want {
			t.Fatalf("request %d: remaining = %q, want %q", i+1, got, want)
		}
	}

	res, err := http.Get(srv.URL + "/test")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", res.StatusCode)
	}
}

func TestPingRedisWithoutClient(t *testing.T) {
	if RedisEnabled() {
		t.Skip("redis client configured by another test")
	}
	if err := PingRedis(context.Background()); err == nil {
		t.Fatal("expected error without redis client")
	}
}
