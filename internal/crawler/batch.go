package crawler

import (
	"context"

	"go.uber.org/zap"
)

// CrawlPages fetches and parses each url in turn, handing every parsed page
// to handler. A page that fails to fetch or parse is logged and skipped; an
// error from handler stops the crawl.
func CrawlPages(ctx context.Context, urls []string, logger *zap.Logger, handler func(Page) error) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return err
		}

		html, err := Fetch(ctx, url)
		if err != nil {
			logger.Warn("[Crawler] fetch failed", zap.String("url", url), zap.Error(err))
			continue
		}
		page, err := ParsePage(html)
		if err != nil {
			logger.Warn("[Crawler] parse failed", zap.String("url", url), zap.Error(err))
			continue
		}
		page.URL = url

		if err := handler(page); err != nil {
			return err
		}
	}
	return nil
}
