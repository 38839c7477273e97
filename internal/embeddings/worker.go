package embeddings

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mirrow/internal/model"
	"mirrow/internal/observability"
)

const (
	defaultChunkSize = 1000
	defaultWorkers   = 5
)

// VectorStore replaces every stored chunk of a product.
type VectorStore interface {
	Replace(ctx context.Context, productID, title string, chunks []string, embeddings [][]float32) error
}

// Result counts products embedded and products that failed.
type Result struct {
	Embedded int
	Failed   int
}

// Worker embeds formatted products and stores their vectors.
type Worker struct {
	Embedder  Embedder
	Store     VectorStore
	Workers   int
	ChunkSize int
	Logger    *zap.Logger
}

func (w *Worker) Run(ctx context.Context, products []model.FormattedProduct) (Result, error) {
	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := w.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	var embedded, failed atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(workers)

	for _, p := range products {
		if ctx.Err() != nil {
			break
		}
		p := p
		g.Go(func() error {
			if err := w.process(ctx, p); err != nil {
				failed.Add(1)
				logger.Error("[Embeddings] failed to process product",
					zap.String("product_id", p.ProductID), zap.Error(err))
				return nil
			}
			embedded.Add(1)
			logger.Info("[Embeddings] product embedded", zap.String("product_id", p.ProductID))
			return nil
		})
	}
	_ = g.Wait()

	return Result{Embedded: int(embedded.Load()), Failed: int(failed.Load())}, ctx.Err()
}

func (w *Worker) process(ctx context.Context, p model.FormattedProduct) error {
	chunks := Chunk(ProductText(p.Title, p.Data), w.ChunkSize)
	vectors := make([][]float32, len(chunks))
	for i, c := range chunks {
		v, err := w.Embedder.Embed(ctx, c)
		if err != nil {
			return fmt.Errorf("embedding chunk %d: %w", i, err)
		}
		observability.EmbeddingsTotal.Inc()
		vectors[i] = v
	}
	return w.Store.Replace(ctx, p.ProductID, p.Title, chunks, vectors)
}
