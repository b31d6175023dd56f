package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"lending_backend/internal/db"
	"lending_backend/internal/domain"
	"lending_backend/internal/repository"
	"lending_backend/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	email := flag.String("email", "tester@example.com", "user email")
	password := flag.String("password", "tester", "password for a new user")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	hash, err := service.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	u, created, err := repo.GetOrCreate(ctx, &domain.User{
		Email:        *email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: hash,
		Role:         domain.UserRoleUser,
		IsActive:     true,
	})
	if err != nil {
		log.Fatalf("create user failed: %v", err)
	}
	if created {
		log.Printf("user created id=%d\n", u.ID)
	} else {
		log.Printf("user already exists id=%d\n", u.ID)
	}

	service.InitJWT(secret, 24*time.Hour)
	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	fmt.Println(token)
}
