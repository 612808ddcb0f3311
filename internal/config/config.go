// Package config loads and validates all environment variables at startup.
// Every other package receives typed values — nothing reads os.Getenv directly.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the fully-parsed application configuration. It is constructed
// once in main and passed by reference; nothing mutates it afterwards.
type Config struct {
	// ── Server ────────────────────────────────────────────────────────────────
	Port string // default "8080"
	Env  string // "development" | "staging" | "production"

	// AllowedOrigins is the CORS allowlist for the storefront frontend.
	// Empty in development means any origin is echoed back.
	AllowedOrigins []string

	// ── Resend ────────────────────────────────────────────────────────────────
	ResendAPIKey  string
	EmailFromAddr string // e.g. "orders@example.com"
	EmailFromName string // e.g. "Your Company"

	// AdminEmails are blind-copied on every order confirmation, in the order
	// they appear in ADMIN_EMAILS.
	AdminEmails []string

	// ── Invoice spool ─────────────────────────────────────────────────────────
	// InvoiceDir is where rendered PDFs live between render and send.
	// Defaults to the system temp directory.
	InvoiceDir string

	// SendTimeout bounds one mail dispatch. A hung provider call fails the
	// request instead of blocking it indefinitely.
	SendTimeout time.Duration // default 15s
}

// Load reads all environment variables and returns a validated Config.
// It automatically loads a .env file from the working directory when present,
// so plain `go run ./cmd/api` works in development without any wrapper.
// Real environment variables always take precedence over .env values.
func Load() (*Config, error) {
	loadDotEnv(".env")

	c := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		EmailFromAddr:  getEnv("EMAIL_FROM_ADDR", "orders@example.com"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "Your Company"),
		AdminEmails:    getEnvAsList("ADMIN_EMAILS"),
		InvoiceDir:     getEnv("INVOICE_DIR", os.TempDir()),
		SendTimeout:    getEnvAsDuration("SEND_TIMEOUT", 15*time.Second),
	}

	return c, c.validate()
}

func (c *Config) validate() error {
	var errs []error

	if c.ResendAPIKey == "" {
		errs = append(errs, fmt.Errorf("missing required env var: RESEND_API_KEY"))
	}

	// Admin observers are part of the delivery contract — refuse to start
	// without at least one.
	if len(c.AdminEmails) == 0 {
		errs = append(errs, fmt.Errorf("missing required env var: ADMIN_EMAILS"))
	}

	return errors.Join(errs...)
}

// ─── DOT-ENV LOADER ──────────────────────────────────────────────────────────

// loadDotEnv reads key=value pairs from path and sets them in the environment,
// but only for keys that are not already set. This means real env vars (e.g.
// from Docker / Railway / your shell) always win over the file.
// Missing file, blank lines, and #-comments are all silently ignored.
func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return // file absent — that's fine
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		// Strip optional surrounding quotes: KEY="value" or KEY='value'
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		// Only set if the key isn't already present in the environment.
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsList parses a comma-separated env var into a slice, trimming
// whitespace and dropping empty entries. Order is preserved.
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	// Try a plain integer first (treated as seconds).
	if value, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(value) * time.Second
	}
	// Fall back to Go duration syntax: "30s", "5m", "1h", etc.
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	return defaultValue
}
