package pipeline

import (
	"context"

	"go.uber.org/zap"

	"mirrow/internal/formatter"
	"mirrow/internal/observability"
)

// Cache stores formatter output keyed by its inputs.
type Cache interface {
	Get(ctx context.Context, rawDescription, title string) (formatter.FormattedProductData, bool, error)
	Set(ctx context.Context, rawDescription, title string, data formatter.FormattedProductData) error
}

// CachedFormatter runs formatter.Format behind an optional cache. Cache
// failures are logged and never stop a description from being formatted.
type CachedFormatter struct {
	Cache  Cache
	Logger *zap.Logger
}

func (f *CachedFormatter) Format(ctx context.Context, rawDescription, title string) formatter.FormattedProductData {
	logger := f.logger()

	if f.Cache != nil {
		data, ok, err := f.Cache.Get(ctx, rawDescription, title)
		switch {
		case err != nil:
			logger.Warn("[Cache] lookup failed", zap.Error(err))
		case ok:
			observability.CacheHits.Inc()
			return data
		default:
			observability.CacheMisses.Inc()
		}
	}

	data := formatter.Format(rawDescription, title)
	observability.DescriptionsFormatted.Inc()
	observability.SpecificationsExtracted.Observe(float64(len(data.Specifications)))
	if data.Fallback(title) {
		observability.DescriptionFallbacks.Inc()
		logger.Debug("[Formatter] fell back to title template", zap.String("title", title))
	}

	if f.Cache != nil {
		if err := f.Cache.Set(ctx, rawDescription, title, data); err != nil {
			logger.Warn("[Cache] store failed", zap.Error(err))
		}
	}
	return data
}

// Short is formatter.ShortDescription over the cached record.
func (f *CachedFormatter) Short(ctx context.Context, rawDescription, title string, maxLength int) string {
	return formatter.Shorten(f.Format(ctx, rawDescription, title).CleanDescription, maxLength)
}

func (f *CachedFormatter) logger() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}
