package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret         string
	JWTExpiry         time.Duration
	ConfirmExpiry     time.Duration
	MinPasswordLength int

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Deadline reminders
	ReminderSchedule string // six-field cron spec, seconds first
	ReminderWindow   time.Duration
	Timezone         *time.Location

	// JSON API
	CORSAllowedOrigins []string

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Taigen"),
		AppEnv:  envRequired("APP_ENV"), // 'development' or 'production'
		AppURL:  envRequired("APP_URL"), // base URL for email and share links
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/taigen.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret:         envRequired("JWT_SECRET"),
		JWTExpiry:         envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days
		ConfirmExpiry:     envDuration("CONFIRM_EXPIRY", 24*time.Hour),
		MinPasswordLength: envInt("MIN_PASSWORD_LENGTH", 6),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Reminders
		ReminderSchedule: envString("REMINDER_SCHEDULE", "0 0 9 * * *"),
		ReminderWindow:   envDuration("REMINDER_WINDOW", 72*time.Hour),
		Timezone:         envLocation("TIMEZONE", "Asia/Tokyo"),

		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction exits when a production deployment lacks a service that
// development can fake (email is only logged there).
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envLocation(key, def string) *time.Location {
	name := envString(key, def)
	loc, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("config invalid timezone, using UTC", "key", key, "value", name)
		return time.UTC
	}
	return loc
}

// envList splits a comma-separated value, dropping blanks.
func envList(key string) []string {
	var list []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			list = append(list, item)
		}
	}
	return list
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy without secrets, safe for templates and ctx.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:           c.AppName,
		AppEnv:            c.AppEnv,
		AppURL:            c.AppURL,
		Port:              c.Port,
		EmailFrom:         c.EmailFrom,
		MinPasswordLength: c.MinPasswordLength,
		Timezone:          c.Timezone,
	}
}
