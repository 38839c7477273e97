package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	RedisURL    string
	OpenAIKey   string
	MetricsPort string
	HTTPAddr    string
	WorkerCount int
	CacheTTL    time.Duration
	LogLevel    string

	ShopifyStoreDomain       string
	ShopifyStorefrontToken   string
	ShopifyStorefrontVersion string
	ShopifyAdminToken        string
	ShopifyAdminVersion      string

	WhopAPIKey    string
	WhopCompanyID string
	WhopBaseURL   string

	SyncLogPath string
}

func Load() *Config {
	// .env at the project root
	_ = godotenv.Load("../../.env")
	// falls back to the working directory
	_ = godotenv.Load()
	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		WorkerCount: getEnvInt("WORKER_COUNT", 5),
		CacheTTL:    getEnvDuration("CACHE_TTL", 24*time.Hour),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		ShopifyStoreDomain:       os.Getenv("SHOPIFY_STORE_DOMAIN"),
		ShopifyStorefrontToken:   os.Getenv("SHOPIFY_STOREFRONT_TOKEN"),
		ShopifyStorefrontVersion: getEnv("SHOPIFY_STOREFRONT_API_VERSION", "2025-07"),
		ShopifyAdminToken:        os.Getenv("SHOPIFY_ADMIN_TOKEN"),
		ShopifyAdminVersion:      getEnv("SHOPIFY_ADMIN_API_VERSION", "2025-01"),

		WhopAPIKey:    os.Getenv("WHOP_API_KEY"),
		WhopCompanyID: os.Getenv("WHOP_COMPANY_ID"),
		WhopBaseURL:   getEnv("WHOP_BASE_URL", "https://api.whop.com/api/v2"),

		SyncLogPath: getEnv("SYNC_LOG_PATH", "whop_sync.txt"),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil || v <= 0 {
		return d
	}
	return v
}

func getEnvDuration(k string, d time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil || v <= 0 {
		return d
	}
	return v
}
