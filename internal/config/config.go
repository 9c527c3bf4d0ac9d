package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	JWTSecret          string
	CORSAllowedOrigins []string

	CompetitionYear int
	PublicBaseURL   string

	QRRenderBaseURL string

	StorageBaseURL    string
	StorageBucket     string
	StorageServiceKey string

	PaymentProvider        string
	HotPaySecretKey        string
	HotPayBaseURL          string
	PaymentCallbackBaseURL string
	WebhookReplayTTL       time.Duration

	SMTPAddr     string
	SMTPHost     string
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	EmailEnabled bool

	AccessTokenTTL  time.Duration
	IdempotencyTTL  time.Duration
	IntakeRateLimit string

	CampaignQueue      string
	WorkerConcurrency  int
	RunMigrations      bool
	MigrationsLocation string
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		JWTSecret:          k.String("JWT_SECRET"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		CompetitionYear: parseInt(k.String("COMPETITION_YEAR"), time.Now().Year()),
		PublicBaseURL:   valueOrDefault(k.String("PUBLIC_BASE_URL"), "http://localhost:8080"),

		QRRenderBaseURL: valueOrDefault(k.String("QR_RENDER_BASE_URL"), "https://api.qrserver.com/v1/create-qr-code/"),

		StorageBaseURL:    k.String("STORAGE_BASE_URL"),
		StorageBucket:     valueOrDefault(k.String("STORAGE_BUCKET"), "sauce-images"),
		StorageServiceKey: k.String("STORAGE_SERVICE_KEY"),

		PaymentProvider:        valueOrDefault(k.String("PAYMENT_PROVIDER"), "hotpay"),
		HotPaySecretKey:        k.String("HOTPAY_SECRET_KEY"),
		HotPayBaseURL:          k.String("HOTPAY_BASE_URL"),
		PaymentCallbackBaseURL: k.String("PAYMENT_CALLBACK_BASE_URL"),
		WebhookReplayTTL:       parseDuration(k.String("WEBHOOK_REPLAY_TTL"), "24h"),

		SMTPAddr:     k.String("SMTP_ADDR"),
		SMTPHost:     k.String("SMTP_HOST"),
		SMTPUsername: k.String("SMTP_USERNAME"),
		SMTPPassword: k.String("SMTP_PASSWORD"),
		EmailFrom:    valueOrDefault(k.String("EMAIL_FROM"), "noreply@scovillecup.example"),
		EmailEnabled: parseBool(k.String("EMAIL_ENABLED")),

		AccessTokenTTL:  parseDuration(k.String("ACCESS_TOKEN_TTL"), "15m"),
		IdempotencyTTL:  parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),
		IntakeRateLimit: valueOrDefault(k.String("INTAKE_RATE_LIMIT"), "20-M"),

		CampaignQueue:      valueOrDefault(k.String("CAMPAIGN_QUEUE"), "campaigns"),
		WorkerConcurrency:  parseInt(k.String("WORKER_CONCURRENCY"), 4),
		RunMigrations:      parseBool(k.String("RUN_MIGRATIONS")),
		MigrationsLocation: valueOrDefault(k.String("MIGRATIONS_LOCATION"), "file://db/migrations"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return parsed
}
