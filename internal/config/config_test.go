package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"REDIS_URL", "METRICS_PORT", "HTTP_ADDR", "WORKER_COUNT", "CACHE_TTL", "WHOP_BASE_URL", "SYNC_LOG_PATH"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, "9090", cfg.MetricsPort)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 5, cfg.WorkerCount)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "https://api.whop.com/api/v2", cfg.WhopBaseURL)
	assert.Equal(t, "whop_sync.txt", cfg.SyncLogPath)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WORKER_COUNT", "12")
	t.Setenv("CACHE_TTL", "90m")
	t.Setenv("SHOPIFY_STORE_DOMAIN", "example.myshopify.com")

	cfg := Load()

	assert.Equal(t, 12, cfg.WorkerCount)
	assert.Equal(t, 90*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "example.myshopify.com", cfg.ShopifyStoreDomain)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "many")
	t.Setenv("CACHE_TTL", "-5s")

	cfg := Load()

	assert.Equal(t, 5, cfg.WorkerCount)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
}
