package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// EmailConfig selects the outbound email provider and its credentials.
type EmailConfig struct {
	Provider       string
	GmailUser      string
	GmailPass      string
	SendGridAPIKey string
	SMTPHost       string
	SMTPPort       int
	SMTPSecure     bool
	SMTPUser       string
	SMTPPass       string
	From           string
	AdminEmail     string
}

// SlackConfig holds the Slack integration credentials. Every field is
// optional; an empty value turns the matching capability into a no-op.
type SlackConfig struct {
	WebhookURL    string
	BotToken      string
	SigningSecret string
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL      string
	Port             string
	Env              string
	CORSOrigin       string
	RateLimitGlobal  RateLimitConfig
	RateLimitContact RateLimitConfig
	Email            EmailConfig
	Slack            SlackConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        getEnv("PORT", "5000"),
		Env:         getEnv("APP_ENV", "development"),
		CORSOrigin:  os.Getenv("CORS_ORIGIN"),
		Email: EmailConfig{
			Provider:       getEnv("EMAIL_PROVIDER", "gmail"),
			GmailUser:      os.Getenv("GMAIL_USER"),
			GmailPass:      os.Getenv("GMAIL_PASS"),
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			SMTPHost:       os.Getenv("SMTP_HOST"),
			SMTPPort:       parseIntEnv("SMTP_PORT", 587),
			SMTPSecure:     os.Getenv("SMTP_SECURE") == "true",
			SMTPUser:       os.Getenv("SMTP_USER"),
			SMTPPass:       os.Getenv("SMTP_PASS"),
			From:           getEnv("EMAIL_FROM", "noreply@example.com"),
			AdminEmail:     getEnv("ADMIN_EMAIL", "admin@example.com"),
		},
		Slack: SlackConfig{
			WebhookURL:    os.Getenv("SLACK_WEBHOOK_URL"),
			BotToken:      os.Getenv("SLACK_BOT_TOKEN"),
			SigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		},
	}

	global, err := parseRateLimit(getEnv("RATE_LIMIT_GLOBAL", "100/15min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_GLOBAL value: %w", err)
	}
	cfg.RateLimitGlobal = global

	contact, err := parseRateLimit(getEnv("RATE_LIMIT_CONTACT", "5/hour"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_CONTACT value: %w", err)
	}
	cfg.RateLimitContact = contact

	return cfg, nil
}

// Production reports whether the service runs with redacted error output.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// AllowedOrigins lists the CORS origins accepted by the API. The local dev
// frontends are always allowed alongside the configured origin.
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, 3)
	if c.CORSOrigin != "" {
		origins = append(origins, c.CORSOrigin)
	}
	return append(origins, "http://localhost:3000", "http://localhost:5173")
}

// parseRateLimit understands values like "5/min", "100/15min" or "1/hour".
func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	multiplier := 1
	if idx := strings.IndexFunc(unit, func(r rune) bool { return r < '0' || r > '9' }); idx > 0 {
		multiplier, err = strconv.Atoi(unit[:idx])
		if err != nil || multiplier <= 0 {
			return RateLimitConfig{}, fmt.Errorf("invalid interval multiplier: %s", unit)
		}
		unit = unit[idx:]
	}

	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: time.Duration(multiplier) * interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseIntEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}
