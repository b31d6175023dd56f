package db

import (
	"context"
	"time"

	"lending_backend/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens the Ledger Store pool and exits the process when the
// database is unreachable.
func Connect(dsn string) *pgxpool.Pool {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Fatal("invalid database url", "error", err)
	}
	cfg.MaxConnIdleTime = 5 * time.Minute

	db, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("database connected", "max_conns", cfg.MaxConns)
	return db
}

// TablesExist reports whether every named table exists in the current schema
func TablesExist(ctx context.Context, db *pgxpool.Pool, tables ...string) (bool, error) {
	var n int
	err := db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = ANY($1)
	`, tables).Scan(&n)
	if err != nil {
		return false, err
	}
	return n == len(tables), nil
}
