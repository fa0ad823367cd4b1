package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret aborts startup: tokens issued without a secret would be
// forgeable, so there is no per-request recovery from this.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not configured")

type Config struct {
	Env   string
	Port  int
	DBURL string

	// Public base URL of the app, drives the refresh cookie scoping rules.
	AppURL string

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	BcryptCost        int
	MinPasswordLength int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Optional bootstrap admin account, seeded at startup when both are set.
	AdminEmail    string
	AdminPassword string
	AdminName     string

	OTLPEndpoint string

	LoginRateLimit  int
	LoginRateWindow time.Duration
}

func Load() (Config, error) {
	// .env is a dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg := Config{
		Env:   getEnv("APP_ENV", "dev"),
		Port:  getEnvInt("PORT", 8080),
		DBURL: buildDBURL(),

		AppURL: getEnv("APP_URL", "http://localhost"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		AccessTTL:  getEnvDuration("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL: getEnvDuration("JWT_REFRESH_TTL", 24*time.Hour),

		BcryptCost:        getEnvInt("BCRYPT_COST", 10),
		MinPasswordLength: getEnvInt("MIN_PASSWORD_LENGTH", 8),

		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),

		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),

		LoginRateLimit:  getEnvInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: getEnvDuration("LOGIN_RATE_WINDOW", time.Minute),
	}

	if cfg.Env == "dev" && cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-only-insecure-secret"
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}

	return cfg, nil
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "cataloghub")
	pass := getEnv("DB_PASSWORD", "cataloghub")
	name := getEnv("DB_NAME", "cataloghub")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return d
	}
	return fallback
}
