package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

// Config holds runtime settings read from the environment.
type Config struct {
	Port           string
	Storage        string // StorageMongo or StorageMemory
	MongoURI       string
	DBName         string
	JWTSecret      string
	TokenExpiry    time.Duration
	FrontendURL    string
	Location       *time.Location // "today" for streaks is computed here
	GeminiAPIKey   string
	GeminiModel    string
	ResendAPIKey   string
	NudgeFrom      string
	NudgeSchedule  string
	LogLevel       string
	MetricsEnabled bool
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment only")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables and validates it.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		Storage:       getenv("STORAGE", StorageMongo),
		MongoURI:      getenv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:        getenv("DB_NAME", "wellness"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		FrontendURL:   getenv("FRONTEND_URL", "http://localhost:3000"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		NudgeFrom:     getenv("NUDGE_FROM_EMAIL", "onboarding@resend.dev"),
		NudgeSchedule: getenv("NUDGE_SCHEDULE", "0 18 * * *"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	if cfg.Storage != StorageMongo && cfg.Storage != StorageMemory {
		return nil, fmt.Errorf("invalid STORAGE %q: want %q or %q", cfg.Storage, StorageMongo, StorageMemory)
	}

	expiry, err := time.ParseDuration(getenv("TOKEN_EXPIRY", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_EXPIRY: %w", err)
	}
	if expiry <= 0 {
		return nil, errors.New("TOKEN_EXPIRY must be positive")
	}
	cfg.TokenExpiry = expiry

	loc, err := time.LoadLocation(getenv("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	cfg.MetricsEnabled, err = strconv.ParseBool(getenv("METRICS_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid METRICS_ENABLED: %w", err)
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
