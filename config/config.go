package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = 8080
	defaultCommitTimeout = 30 * time.Second
)

// Config holds every runtime setting of the service.
type Config struct {
	DatabaseURL        string
	JWTSecretKey       string
	ServerPort         int
	LogLevel           slog.Level
	CommitTimeout      time.Duration
	CORSAllowedOrigins []string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; variables already set win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port := defaultPort
	if portStr := os.Getenv("SERVER_PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
		}
		port = p
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	var level slog.Level
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if err := level.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
		}
	}

	commitTimeout := defaultCommitTimeout
	if v := os.Getenv("COMMIT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid COMMIT_TIMEOUT environment variable: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("COMMIT_TIMEOUT must be positive, got %s", d)
		}
		commitTimeout = d
	}

	cfg := &Config{
		DatabaseURL:        dbURL,
		JWTSecretKey:       jwtKey,
		ServerPort:         port,
		LogLevel:           level,
		CommitTimeout:      commitTimeout,
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS"), []string{"*"}),
		R2AccountID:        os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:      os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:  os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:       os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:    os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	if err := cfg.validateR2(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// R2Enabled reports whether bracket snapshots are archived.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != ""
}

// validateR2 accepts either no R2 settings or all of them.
func (c *Config) validateR2() error {
	vars := map[string]string{
		"R2_ACCOUNT_ID":        c.R2AccountID,
		"R2_ACCESS_KEY_ID":     c.R2AccessKeyID,
		"R2_SECRET_ACCESS_KEY": c.R2SecretAccessKey,
		"R2_BUCKET_NAME":       c.R2BucketName,
		"R2_PUBLIC_BASE_URL":   c.R2PublicBaseURL,
	}
	var set, missing []string
	for name, v := range vars {
		if v == "" {
			missing = append(missing, name)
		} else {
			set = append(set, name)
		}
	}
	if len(set) == 0 || len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return fmt.Errorf("incomplete R2 configuration, missing %s", strings.Join(missing, ", "))
}

func splitList(raw string, def []string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
