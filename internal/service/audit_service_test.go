package service

import (
	"context"
	"errors"
	"testing"

	"lending_backend/internal/domain"
)

type recordingAudit struct {
	entries []*domain.AuditLog
	err     error
}

func (r *recordingAudit) Create(_ context.Context, entry *domain.AuditLog) error {
	r.entries = append(r.entries, entry)
	return r.err
}

func TestAuditService_LogLogin(t *testing.T) {
	store := &recordingAudit{}
	s := NewAuditService(store)

	s.LogLogin(context.Background(), 5, "10.0.0.1", "curl")
	s.LogLoginFailed(context.Background(), "ghost@example.com", "10.0.0.2", "curl")

	if len(store.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(store.entries))
	}
	if e := store.entries[0]; e.Action != domain.AuditActionLogin || e.UserID != 5 || e.IP != "10.0.0.1" {
		t.Fatalf("unexpected login entry: %+v", e)
	}
	if e := store.entries[1]; e.Action != domain.AuditActionLoginFailed || e.Details["email"] != "ghost@example.com" {
		t.Fatalf("unexpected failed login entry: %+v", e)
	}
}

func TestAuditService_StoreErrorSwallowed(t *testing.T) {
	s := NewAuditService(&recordingAudit{err: errors.New("db down")})
	// must not panic or propagate
	s.LogSeed(context.Background(), map[string]interface{}{"users": 2})
}
