package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lending_backend/internal/config"
	"lending_backend/internal/db"
	httpServer "lending_backend/internal/http"
	"lending_backend/internal/http/middleware"
	"lending_backend/internal/logger"
	"lending_backend/internal/migrations"
	"lending_backend/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT(cfg.JWTSecret, cfg.JWTTTL)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	ctx := context.Background()
	if err := db.ApplyMigrations(ctx, dbPool, migrations.FS); err != nil {
		logger.Fatal("apply migrations", "error", err)
	}

	if cfg.DevMode {
		if _, err := service.SeedDevelopment(ctx, dbPool); err != nil {
			logger.Error("development seed failed", "error", err)
		}
	}

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer middleware.CloseRedis()

	if !cfg.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(), middleware.CORS(cfg.AllowOrigin))

	hub := httpServer.RegisterRoutes(r, dbPool, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", cfg.AppVersion, "timezone", cfg.Location.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	hub.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
