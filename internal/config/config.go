package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Database
	DatabaseURL string

	// JWT
	JWTSecret string

	// Background Workers
	WorkerCount            int
	BalanceRefreshInterval time.Duration

	// CORS
	AllowedOrigins []string

	// Email (Resend)
	ResendAPIKey string
	FromEmail    string

	// Sentry
	SentryDSN string

	// Statements
	StatementLogoPath string

	// Ledger numbering
	NodeID        int64
	BillPrefix    string
	ReceiptPrefix string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                   getEnv("PORT", "8080"),
		Environment:            getEnv("ENVIRONMENT", "development"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		WorkerCount:            getEnvAsInt("WORKER_COUNT", 5),
		BalanceRefreshInterval: getEnvAsDuration("BALANCE_REFRESH_INTERVAL", time.Hour),
		AllowedOrigins:         getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		ResendAPIKey:           getEnv("RESEND_API_KEY", ""),
		FromEmail:              getEnv("FROM_EMAIL", "frontdesk@example.com"),
		SentryDSN:              getEnv("SENTRY_DSN", ""),
		StatementLogoPath:      getEnv("STATEMENT_LOGO_PATH", ""),
		NodeID:                 int64(getEnvAsInt("NODE_ID", 1)),
		BillPrefix:             getEnv("BILL_PREFIX", "BL"),
		ReceiptPrefix:          getEnv("RECEIPT_PREFIX", "RC"),
	}

	// Validate required configuration
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	// snowflake nodes are 10 bits
	if cfg.NodeID < 0 || cfg.NodeID > 1023 {
		return nil, fmt.Errorf("NODE_ID must be between 0 and 1023, got %d", cfg.NodeID)
	}

	// Set default JWT secret for development
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}

	return cfg, nil
}

// EmailEnabled reports whether settlement receipts can be sent
func (c *Config) EmailEnabled() bool {
	return c.ResendAPIKey != "" && c.FromEmail != ""
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration reads an environment variable as a Go duration (e.g. "30m")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
