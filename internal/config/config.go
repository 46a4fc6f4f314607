package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTAccessTTL   = "24h"
	defaultBlobBaseDir    = "./blobs"
	defaultBlobURLPath    = "/api/v1/files"
	defaultBlobSignSecret = "change-me-blob-secret"
	defaultBlobURLTTL     = "1h"
	defaultFreePostLimit  = "5"
)

// Runtime holds environment-driven settings for the API process.
type Runtime struct {
	AppEnv string

	JWTSecret    string
	JWTAccessTTL time.Duration

	// Blob storage
	BlobBaseDir    string
	BlobURLPath    string
	BlobSignSecret string
	BlobURLTTL     time.Duration

	// Free-tier ceiling on lifetime created posts for accounts
	// without an active entitlement.
	FreePostLimit int
}

func Load() (*Runtime, error) {
	cfg := &Runtime{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.BlobBaseDir = strings.TrimSpace(getEnv("BLOB_BASE_DIR", defaultBlobBaseDir))
	cfg.BlobURLPath = strings.TrimSpace(getEnv("BLOB_URL_PATH", defaultBlobURLPath))
	cfg.BlobSignSecret = strings.TrimSpace(getEnv("BLOB_SIGN_SECRET", defaultBlobSignSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.BlobURLTTL, err = parseDurationEnv("BLOB_URL_TTL", defaultBlobURLTTL)
	if err != nil {
		return nil, err
	}
	cfg.FreePostLimit, err = parseIntEnv("FREE_POST_LIMIT", defaultFreePostLimit)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Runtime) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.BlobURLTTL <= 0 {
		return fmt.Errorf("BLOB_URL_TTL must be > 0")
	}
	if cfg.FreePostLimit < 0 {
		return fmt.Errorf("FREE_POST_LIMIT must be >= 0")
	}
	if cfg.BlobBaseDir == "" {
		return fmt.Errorf("BLOB_BASE_DIR must not be empty")
	}
	if !strings.HasPrefix(cfg.BlobURLPath, "/") {
		return fmt.Errorf("BLOB_URL_PATH must start with /")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.BlobSignSecret, defaultBlobSignSecret) {
			return fmt.Errorf("in prod/release BLOB_SIGN_SECRET must be set and not default")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
