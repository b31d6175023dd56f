package http

import (
	"lending_backend/internal/config"
	"lending_backend/internal/http/handlers"
	"lending_backend/internal/http/middleware"
	"lending_backend/internal/repository"
	"lending_backend/internal/service"
	"lending_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires repositories, services and handlers onto r. The
// returned hub must be shut down by the caller.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config) *ws.Hub {
	users := repository.NewUserRepository(db)
	wallets := repository.NewWalletRepository(db)
	tickets := repository.NewTicketRepository(db)
	payments := repository.NewPaymentRepository(db)
	notifications := repository.NewNotificationRepository(db)

	dashboard := service.NewDashboardService(wallets, tickets, payments, notifications, cfg.Location)
	h := &handlers.Handler{
		Dashboard:     dashboard,
		Wallets:       service.NewWalletService(wallets, payments),
		Tickets:       tickets,
		Notifications: notifications,
		Auth:          service.NewAuthService(users),
		Audit:         service.NewAuditService(repository.NewAuditRepository(db)),
	}

	deps := map[string]handlers.Pinger{}
	if middleware.RedisEnabled() {
		deps["redis"] = handlers.PingFunc(middleware.PingRedis)
	}
	healthHandler := handlers.NewHealthHandler(db, cfg.AppVersion, deps)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.RateLimit("api", cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(api, h, users, cfg)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit("api", cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, h, users, cfg)

	// Live dashboard
	hub := ws.NewHub(dashboard, cfg.DashboardPushInterval)
	r.GET("/ws/dashboard", middleware.QueryJWT(users), ws.HandleDashboard(hub, cfg.AllowOrigin))

	return hub
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, users middleware.UserFinder, cfg *config.Config) {
	auth := middleware.JWT(users)

	for _, area := range []string{"reports", "wallet", "tickets", "notifications", "auth"} {
		api.GET("/"+area+"/status", handlers.Status(area))
	}

	// Auth
	api.POST("/auth/login", middleware.RateLimit("auth", cfg.AuthRateLimit, cfg.AuthRateWindow), h.Login)
	api.GET("/auth/me", auth, h.Me)

	// Reports
	api.GET("/reports/dashboard", auth, middleware.UserRateLimit("dashboard", cfg.APIRateLimit, cfg.APIRateWindow), h.GetDashboard)

	// Wallet
	api.GET("/wallet/overview", auth, h.WalletOverview)

	// Tickets
	api.GET("/tickets", auth, h.ListTickets)

	// Notifications
	api.GET("/notifications/recent", auth, h.RecentNotifications)
}
