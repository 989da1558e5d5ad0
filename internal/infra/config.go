package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv            string
	Port              string
	DatabaseURL       string
	StoragePath       string
	QuotaPath         string
	FreeQuotaLimit    int
	EntitlementActive bool
	ImageGenEndpoint  string
	ImageGenModel     string
	ImageEditModel    string
	GenerateTimeout   time.Duration
	EditTimeout       time.Duration
	HTTPReadTimeout   time.Duration
	HTTPWriteTimeout  time.Duration
	HTTPIdleTimeout   time.Duration
	RateLimitPerMin   int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		StoragePath:       getEnv("STORAGE_PATH", "./storage"),
		QuotaPath:         getEnv("QUOTA_PATH", "./storage/quota"),
		FreeQuotaLimit:    getEnvInt("FREE_QUOTA_LIMIT", 3),
		EntitlementActive: getEnvBool("ENTITLEMENT_ACTIVE", false),
		ImageGenEndpoint:  os.Getenv("IMAGEGEN_ENDPOINT"),
		ImageGenModel:     getEnv("IMAGEGEN_MODEL", "gpt-image-1"),
		ImageEditModel:    getEnv("IMAGEGEN_EDIT_MODEL", "dall-e-2"),
		GenerateTimeout:   time.Second * time.Duration(getEnvInt("IMAGEGEN_GENERATE_TIMEOUT_SECONDS", 120)),
		EditTimeout:       time.Second * time.Duration(getEnvInt("IMAGEGEN_EDIT_TIMEOUT_SECONDS", 180)),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 300)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:   getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.ImageGenEndpoint == "" {
		return nil, fmt.Errorf("IMAGEGEN_ENDPOINT is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
