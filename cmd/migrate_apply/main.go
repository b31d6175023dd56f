package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"lending_backend/internal/db"
	"lending_backend/internal/logger"
	"lending_backend/internal/migrations"

	"github.com/joho/godotenv"
)

func main() {
	apply := flag.Bool("apply", false, "apply migrations")
	flag.Parse()

	if !*apply {
		names, err := db.PendingMigrations(migrations.FS)
		if err != nil {
			logger.Fatal("list migrations", "error", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	if err := db.ApplyMigrations(context.Background(), pool, migrations.FS); err != nil {
		logger.Fatal("apply migrations", "error", err)
	}
	fmt.Println("migrations applied")
}
