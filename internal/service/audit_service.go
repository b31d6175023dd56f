package service

import (
	"context"

	"lending_backend/internal/domain"
	"lending_backend/internal/logger"
)

// AuditStore persists audit entries
type AuditStore interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// AuditService handles audit logging. Failures are logged and never fail the caller.
type AuditService struct {
	repo AuditStore
}

func NewAuditService(repo AuditStore) *AuditService {
	return &AuditService{repo: repo}
}

// Log creates a new audit log entry
func (s *AuditService) Log(ctx context.Context, entry *domain.AuditLog) {
	if err := s.repo.Create(ctx, entry); err != nil {
		logger.WithContext(ctx).Error("failed to create audit log", "error", err, "action", entry.Action, "user_id", entry.UserID)
	}
}

// LogLogin logs a successful login
func (s *AuditService) LogLogin(ctx context.Context, userID int64, ip, userAgent string) {
	s.Log(ctx, &domain.AuditLog{
		UserID:    userID,
		Action:    domain.AuditActionLogin,
		Category:  domain.AuditCategoryAuth,
		IP:        ip,
		UserAgent: userAgent,
	})
}

// LogLoginFailed logs a rejected login; the attempted email goes to details
func (s *AuditService) LogLoginFailed(ctx context.Context, email, ip, userAgent string) {
	s.Log(ctx, &domain.AuditLog{
		Action:    domain.AuditActionLoginFailed,
		Category:  domain.AuditCategoryAuth,
		Details:   map[string]interface{}{"email": email},
		IP:        ip,
		UserAgent: userAgent,
	})
}

// LogSeed records a development seed run
func (s *AuditService) LogSeed(ctx context.Context, details map[string]interface{}) {
	s.Log(ctx, &domain.AuditLog{
		Action:   domain.AuditActionSeed,
		Category: domain.AuditCategorySeed,
		Details:  details,
	})
}
