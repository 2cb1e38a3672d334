package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequired(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_URL", "http://localhost:8090")
	t.Setenv("JWT_SECRET", "test")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg := Load()
	assert.Equal(t, "Taigen", cfg.AppName)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 6, cfg.MinPasswordLength)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 72*time.Hour, cfg.ReminderWindow)
	assert.Equal(t, "0 0 9 * * *", cfg.ReminderSchedule)
	assert.Equal(t, "Asia/Tokyo", cfg.Timezone.String())
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("MIN_PASSWORD_LENGTH", "8")
	t.Setenv("REMINDER_WINDOW", "24h")
	t.Setenv("TIMEZONE", "Nowhere/Atlantis")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("JWT_EXPIRY", "not-a-duration")

	cfg := Load()
	assert.Equal(t, 8, cfg.MinPasswordLength)
	assert.Equal(t, 24*time.Hour, cfg.ReminderWindow)
	assert.Equal(t, time.UTC, cfg.Timezone)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
}

func TestSanitizedDropsSecrets(t *testing.T) {
	setRequired(t)
	t.Setenv("RESEND_API_KEY", "re_secret")
	t.Setenv("SENTRY_DSN", "https://key@sentry.example/1")

	safe := Load().Sanitized()
	assert.Empty(t, safe.JWTSecret)
	assert.Empty(t, safe.ResendAPIKey)
	assert.Empty(t, safe.SentryDSN)
	assert.Equal(t, "Taigen", safe.AppName)
}
