package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	Environment     string
	LogLevel        string
	FirebaseProject string
	FirebaseApiKey  string

	// Service account; JSON wins over the file path when both are set.
	ServiceAccountJSON string
	ServiceAccountPath string

	ImageHost     string // "imgbb" or "gcs"
	ImgbbApiKey   string
	StorageBucket string

	StoreName     string
	MerchantPhone string
	AdminEmails   []string

	RatePrimaryURL  string
	RateFallbackURL string
	RateTimeout     time.Duration

	CartIdleTTL time.Duration
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		FirebaseProject:    getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:     getEnv("FIREBASE_API_KEY", ""),
		ServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		ImageHost:          strings.ToLower(getEnv("IMAGE_HOST", "imgbb")),
		ImgbbApiKey:        getEnv("IMGBB_API_KEY", ""),
		StorageBucket:      getEnv("STORAGE_BUCKET", ""),
		StoreName:          getEnv("STORE_NAME", "Un Dulcito"),
		MerchantPhone:      getEnv("MERCHANT_PHONE", "584121289510"),
		AdminEmails:        getEnvAsList("ADMIN_EMAILS"),
		RatePrimaryURL:     getEnv("RATE_PRIMARY_URL", "http://www.bcv.org.ve"),
		RateFallbackURL:    getEnv("RATE_FALLBACK_URL", "https://pydolarvenezuela-api.vercel.app/api/v1/dollar?page=bcv"),
		RateTimeout:        getEnvAsDuration("RATE_TIMEOUT", 8*time.Second),
		CartIdleTTL:        getEnvAsDuration("CART_IDLE_TTL", 6*time.Hour),
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// bare numbers are seconds
		if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
