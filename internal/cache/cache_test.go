package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirrow/internal/formatter"
)

func TestKey(t *testing.T) {
	k := Key("<p>Material: Metal</p>", "Studio Mirror")

	assert.True(t, strings.HasPrefix(k, keyPrefix))
	assert.Len(t, k, len(keyPrefix)+64)
	assert.Equal(t, k, Key("<p>Material: Metal</p>", "Studio Mirror"))
	assert.NotEqual(t, k, Key("<p>Material: Metal</p>", "Studio Mirror 2"))
}

func TestKey_SeparatesTitleFromDescription(t *testing.T) {
	assert.NotEqual(t, Key("bc", "a"), Key("c", "ab"))
}

type fakeRedis struct {
	redis.Cmdable
	data map[string][]byte
	ttl  time.Duration
	err  error
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = value.([]byte)
	f.ttl = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestFormatCache_RoundTrip(t *testing.T) {
	rdb := &fakeRedis{data: map[string][]byte{}}
	c := &FormatCache{Client: rdb}
	ctx := context.Background()
	raw := "<p>Material: Metal. Color: Black.</p>"

	_, ok, err := c.Get(ctx, raw, "Studio Mirror")
	require.NoError(t, err)
	assert.False(t, ok)

	want := formatter.Format(raw, "Studio Mirror")
	require.NoError(t, c.Set(ctx, raw, "Studio Mirror", want))
	assert.Equal(t, defaultTTL, rdb.ttl)

	got, ok, err := c.Get(ctx, raw, "Studio Mirror")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFormatCache_Errors(t *testing.T) {
	c := &FormatCache{Client: &fakeRedis{err: errors.New("connection refused")}}
	_, ok, err := c.Get(context.Background(), "raw", "title")
	assert.ErrorContains(t, err, "connection refused")
	assert.False(t, ok)

	rdb := &fakeRedis{data: map[string][]byte{Key("raw", "title"): []byte("{broken")}}
	_, _, err = (&FormatCache{Client: rdb}).Get(context.Background(), "raw", "title")
	assert.ErrorContains(t, err, "decoding format cache entry")
}
