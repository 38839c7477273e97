package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mirrow/internal/formatter"
)

const (
	keyPrefix  = "fmt:"
	defaultTTL = 24 * time.Hour
)

// FormatCache keeps formatted descriptions in redis. Format is deterministic,
// so an entry stays valid for as long as its inputs are unchanged.
type FormatCache struct {
	Client redis.Cmdable
	TTL    time.Duration
}

// Key derives the cache key from the formatter inputs.
func Key(rawDescription, title string) string {
	sum := sha256.Sum256([]byte(title + "\x00" + rawDescription))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get reports ok=false on a miss.
func (c *FormatCache) Get(ctx context.Context, rawDescription, title string) (formatter.FormattedProductData, bool, error) {
	val, err := c.Client.Get(ctx, Key(rawDescription, title)).Bytes()
	if errors.Is(err, redis.Nil) {
		return formatter.FormattedProductData{}, false, nil
	}
	if err != nil {
		return formatter.FormattedProductData{}, false, fmt.Errorf("reading format cache: %w", err)
	}

	var data formatter.FormattedProductData
	if err := json.Unmarshal(val, &data); err != nil {
		return formatter.FormattedProductData{}, false, fmt.Errorf("decoding format cache entry: %w", err)
	}
	return data, true, nil
}

func (c *FormatCache) Set(ctx context.Context, rawDescription, title string, data formatter.FormattedProductData) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding format cache entry: %w", err)
	}

	ttl := c.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return c.Client.Set(ctx, Key(rawDescription, title), b, ttl).Err()
}
