package config

import (
	"os"
	"strconv"
	"time"
)

// Artifact source kinds.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Artifacts
	ArtifactSource string // "file" or "postgres"
	ArtifactDir    string
	ModelArtifact  string

	// How often the Postgres artifact store is compared with loaded versions
	ArtifactWatchInterval time.Duration

	// Database (artifact store)
	DatabaseURL string

	// Redis (rate limiter storage, optional)
	RedisURL string

	// Rate limiting
	RateLimitMax int // requests per minute per IP

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string // empty logs to stdout

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Financial Inclusion Predictor"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:            getEnv("ENV", "development"),
		ServerAddr:     getEnv("SERVER_ADDR", ":3000"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:3000"),
		ArtifactSource: getEnv("ARTIFACT_SOURCE", SourceFile),
		ArtifactDir:    getEnv("ARTIFACT_DIR", "./artifacts"),
		ModelArtifact:  getEnv("MODEL_ARTIFACT", "financial_inclusion_model.json"),
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/fininclusion?sslmode=disable"),
		RedisURL:       getEnv("REDIS_URL", ""),
		RateLimitMax:   getEnvInt("RATE_LIMIT_MAX", 100),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		LogFile:        getEnv("LOG_FILE", ""),
		TLSEnabled:     getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:      getEnv("TLS_CA_FILE", ""),
		CORSOrigins:    getEnv("CORS_ORIGINS", ""),

		ArtifactWatchInterval: getEnvDuration("ARTIFACT_WATCH_INTERVAL", 5*time.Minute),

		SiteTitle:   getEnv("SITE_TITLE", "Financial Inclusion Predictor"),
		SiteTagline: getEnv("SITE_TAGLINE", "Predict whether an individual is likely to have a bank account."),
		SiteFooter:  getEnv("SITE_FOOTER", "Financial Inclusion Predictor"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// UsesDatabase returns true if artifacts are read from Postgres.
func (c *Config) UsesDatabase() bool {
	return c.ArtifactSource == SourcePostgres
}
