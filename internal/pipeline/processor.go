package pipeline

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mirrow/internal/formatter"
	"mirrow/internal/model"
)

const defaultWorkers = 5

// RawStore is the part of the raw repository the processor needs.
type RawStore interface {
	MarkAsProcessed(ctx context.Context, productID string) error
}

// FormattedStore persists formatter output.
type FormattedStore interface {
	Save(ctx context.Context, productID, title string, data formatter.FormattedProductData) error
}

// Result counts what happened to each product of a run.
type Result struct {
	Processed int
	Failed    int
}

// Processor formats raw products and saves the result. A product is only
// marked processed once its formatted record was saved.
type Processor struct {
	Formatter *CachedFormatter
	Raw       RawStore
	Store     FormattedStore
	Workers   int
	Logger    *zap.Logger
}

// Run processes products with at most Workers goroutines. Failures are
// counted, not returned; the only error is ctx's.
func (p *Processor) Run(ctx context.Context, products []model.RawProduct) (Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := p.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	fmtr := p.Formatter
	if fmtr == nil {
		fmtr = &CachedFormatter{Logger: logger}
	}

	var processed, failed atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(workers)

	for _, product := range products {
		if ctx.Err() != nil {
			break
		}
		product := product
		g.Go(func() error {
			if err := p.process(ctx, fmtr, product); err != nil {
				failed.Add(1)
				logger.Error("[Pipeline] failed to process product",
					zap.String("product_id", product.ProductID), zap.Error(err))
				return nil
			}
			processed.Add(1)
			logger.Debug("[Pipeline] product processed", zap.String("product_id", product.ProductID))
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Processed: int(processed.Load()), Failed: int(failed.Load())}
	logger.Info("[Pipeline] run finished",
		zap.Int("processed", res.Processed),
		zap.Int("failed", res.Failed),
		zap.Int("total", len(products)))
	return res, ctx.Err()
}

func (p *Processor) process(ctx context.Context, fmtr *CachedFormatter, product model.RawProduct) error {
	data := fmtr.Format(ctx, product.Description, product.Title)
	if err := p.Store.Save(ctx, product.ProductID, product.Title, data); err != nil {
		return err
	}
	if p.Raw == nil {
		return nil
	}
	return p.Raw.MarkAsProcessed(ctx, product.ProductID)
}
