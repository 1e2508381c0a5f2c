package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `validate:"required"`
	Port        string `validate:"required"`

	MongoURI      string `validate:"required"`
	MongoDatabase string `validate:"required"`

	// RequestTimeout bounds every service-level operation.
	RequestTimeout time.Duration `validate:"gt=0"`

	// SweepCron schedules the dangling-bookings sweep.
	SweepCron string `validate:"required"`

	// AllowedOrigins is the browser origin allowlist for CORS.
	AllowedOrigins []string `validate:"min=1"`

	Server   ServerConfig
	Email    EmailConfig
	Telegram TelegramConfig
}

// ServerConfig holds the HTTP server timeouts.
type ServerConfig struct {
	ReadTimeout  time.Duration `validate:"gt=0"`
	WriteTimeout time.Duration `validate:"gt=0"`
	IdleTimeout  time.Duration `validate:"gt=0"`
}

// EmailConfig selects and configures the outgoing mailer.
type EmailConfig struct {
	Provider    string
	FromAddress string
	FromName    string

	SESRegion             string
	SESAccessKeyID        string
	SESSecretAccessKey    string
	SESInsecureSkipVerify bool
}

// TelegramConfig configures the optional organizer notifications. An empty
// token disables them.
type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the process environment is the source of truth and .env
	// may legitimately be absent.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:    env,
		Port:           getEnv("PORT", "8080"),
		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGODB_DATABASE", "eventlistings"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 5*time.Second),
		SweepCron:      getEnv("SWEEP_CRON", "@every 10m"),
		AllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		Server: ServerConfig{
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Email: EmailConfig{
			Provider:              getEnv("EMAIL_PROVIDER", "noop"),
			FromAddress:           os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:              os.Getenv("EMAIL_FROM_NAME"),
			SESRegion:             os.Getenv("AWS_SES_REGION"),
			SESAccessKeyID:        os.Getenv("AWS_SES_ACCESS_KEY_ID"),
			SESSecretAccessKey:    os.Getenv("AWS_SES_SECRET_ACCESS_KEY"),
			SESInsecureSkipVerify: getEnvBool("AWS_SES_INSECURE_SKIP_VERIFY", false),
		},
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
			ChatID:   getEnvInt64("TELEGRAM_CHAT_ID", 0),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	default:
		return false
	}
}

func getEnvInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
