package main

import (
	"context"
	"fmt"
	"os"

	"lending_backend/internal/db"
	"lending_backend/internal/logger"
	"lending_backend/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	res, err := service.SeedDevelopment(context.Background(), pool)
	if err != nil {
		logger.Fatal("seed failed", "error", err)
	}
	if res == nil {
		fmt.Println("schema missing, run migrate_apply -apply first")
		os.Exit(1)
	}
	fmt.Printf("seeded: users=%d wallets=%d tickets=%d payments=%d notifications=%d\n",
		res.UsersCreated, res.WalletsCreated, res.TicketsCreated, res.Payments, res.Notifications)
}
