package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"lending_backend/internal/db"
	"lending_backend/internal/migrations"
	"lending_backend/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// seededPool connects to DATABASE_URL, migrates and seeds it. Tests using it
// skip when DATABASE_URL is not set.
func seededPool(t *testing.T) (*pgxpool.Pool, *service.SeedResult) {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.ApplyMigrations(ctx, pool, migrations.FS); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	res, err := service.SeedDevelopment(ctx, pool)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if res == nil {
		t.Fatal("seed skipped although migrations ran")
	}

	service.InitJWT("integration-secret", time.Hour)
	return pool, res
}
