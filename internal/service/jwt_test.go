package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseJWT(t *testing.T) {
	InitJWT("test-secret", time.Hour)

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestParseJWT_Expired(t *testing.T) {
	InitJWT("test-secret", time.Hour)

	claims := jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(-time.Minute).Unix(),
		"iat":     time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseJWT(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	InitJWT("test-secret", time.Hour)

	claims := jwt.MapClaims{"user_id": 7, "exp": time.Now().Add(time.Hour).Unix()}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))

	if _, err := ParseJWT(token); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestParseJWT_MissingUserID(t *testing.T) {
	InitJWT("test-secret", time.Hour)

	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))

	if _, err := ParseJWT(token); err == nil {
		t.Fatalf("expected token without user_id to be rejected")
	}
}
