package config

import (
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"lending_backend/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	AppVersion  string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
	DevMode     bool
	AllowOrigin string

	// Calendar used for "today" and for grouping payments by day
	Location *time.Location

	LogLevel string
	LogJSON  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration

	DashboardPushInterval time.Duration
}

// Загрузка конфига из env
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	cfg := FromEnv()
	cfg.DatabaseURL = dbURL
	cfg.JWTSecret = jwtSecret
	return cfg
}

// FromEnv reads every optional setting, applying defaults. Required keys are
// checked by Load.
func FromEnv() *Config {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "dev"
	}

	loc := time.UTC
	if tz := os.Getenv("APP_TIMEZONE"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			logger.Warn("unknown APP_TIMEZONE, falling back to UTC", "tz", tz, "error", err)
		} else {
			loc = l
		}
	}

	return &Config{
		AppPort:     port,
		AppVersion:  version,
		JWTTTL:      time.Duration(intEnv("JWT_TTL_HOURS", 24)) * time.Hour,
		DevMode:     os.Getenv("DEV_MODE") == "true",
		AllowOrigin: os.Getenv("ALLOWED_ORIGIN"),
		Location:    loc,

		LogLevel: stringEnv("LOG_LEVEL", "info"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       intEnv("REDIS_DB", 0),

		APIRateLimit:   intEnv("API_RATE_LIMIT", 120),
		APIRateWindow:  time.Duration(intEnv("API_RATE_WINDOW_SECONDS", 60)) * time.Second,
		AuthRateLimit:  intEnv("AUTH_RATE_LIMIT", 5),
		AuthRateWindow: time.Duration(intEnv("AUTH_RATE_WINDOW_SECONDS", 60)) * time.Second,

		DashboardPushInterval: time.Duration(intEnv("DASHBOARD_PUSH_INTERVAL", 15)) * time.Second,
	}
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// только положительные значения, иначе дефолт
func intEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
