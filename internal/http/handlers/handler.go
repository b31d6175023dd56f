package handlers

import (
	"context"

	"lending_backend/internal/domain"
	"lending_backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type DashboardProvider interface {
	Snapshot(ctx context.Context, user *domain.User) (*domain.DashboardSnapshot, error)
}

type WalletOverviewProvider interface {
	Overview(ctx context.Context, user *domain.User) (*domain.WalletOverview, error)
}

type TicketLister interface {
	ListForUser(ctx context.Context, userID int64) ([]domain.TicketWithParties, error)
}

type NotificationLister interface {
	RecentForUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type AuditLogger interface {
	LogLogin(ctx context.Context, userID int64, ip, userAgent string)
	LogLoginFailed(ctx context.Context, email, ip, userAgent string)
}

// Handler serves the authenticated API. Every field must be set.
type Handler struct {
	Dashboard     DashboardProvider
	Wallets       WalletOverviewProvider
	Tickets       TicketLister
	Notifications NotificationLister
	Auth          Authenticator
	Audit         AuditLogger
}

// currentUser returns the user set by middleware.JWT; handlers behind JWT
// always have one
func currentUser(c *gin.Context) (*domain.User, bool) {
	return middleware.CurrentUser(c)
}
