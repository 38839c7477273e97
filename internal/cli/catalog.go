package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mirrow/internal/cache"
	"mirrow/internal/db"
	"mirrow/internal/embeddings"
	"mirrow/internal/model"
	"mirrow/internal/observability"
	"mirrow/internal/pipeline"
	"mirrow/internal/repository"
	"mirrow/internal/shopify"
)

func (a *app) pool(ctx context.Context) (*pgxpool.Pool, error) {
	if a.cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	return db.NewPool(ctx, a.cfg.DatabaseURL)
}

func (a *app) sqlDB(ctx context.Context) (*sql.DB, error) {
	if a.cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	conn, err := db.New(a.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return conn, nil
}

func (a *app) storefront() (*shopify.StorefrontClient, error) {
	if a.cfg.ShopifyStoreDomain == "" || a.cfg.ShopifyStorefrontToken == "" {
		return nil, errors.New("SHOPIFY_STORE_DOMAIN and SHOPIFY_STOREFRONT_TOKEN must be set")
	}
	return shopify.NewStorefrontClient(a.cfg.ShopifyStoreDomain, a.cfg.ShopifyStorefrontVersion, a.cfg.ShopifyStorefrontToken), nil
}

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the catalog tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pool, err := a.pool(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			a.logger.Info("[Migrate] schema applied")
			return nil
		},
	}
}

func newIngestCommand(a *app) *cobra.Command {
	var pageSize int
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Copy Shopify products into the raw description table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sf, err := a.storefront()
			if err != nil {
				return err
			}
			conn, err := a.sqlDB(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			repo := &repository.RawRepository{DB: conn}
			saved := 0
			err = sf.Products(ctx, pageSize, func(p shopify.Product) error {
				description := p.DescriptionHTML
				if strings.TrimSpace(description) == "" {
					description = p.Description
				}
				raw := model.RawProduct{
					ProductID:   p.ID,
					Handle:      p.Handle,
					Title:       p.Title,
					SourceURL:   fmt.Sprintf("https://%s/products/%s", a.cfg.ShopifyStoreDomain, p.Handle),
					Description: description,
				}
				if err := repo.Save(ctx, raw); err != nil {
					a.logger.Error("[Ingest] failed to save product", zap.String("product_id", p.ID), zap.Error(err))
					return nil
				}
				saved++
				return nil
			})
			if err != nil {
				return err
			}
			a.logger.Info("[Ingest] finished", zap.Int("saved", saved))
			return nil
		},
	}
	cmd.Flags().IntVar(&pageSize, "page-size", 50, "Products per Storefront page")
	return cmd
}

func newProcessCommand(a *app) *cobra.Command {
	var noCache bool
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Format every pending raw description and store the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			conn, err := a.sqlDB(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()
			pool, err := a.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()
			observability.Start(a.cfg.MetricsPort)

			rawRepo := &repository.RawRepository{DB: conn}
			products, err := rawRepo.List(ctx)
			if err != nil {
				return err
			}
			a.logger.Info("[Process] pending products", zap.Int("count", len(products)))

			f := &pipeline.CachedFormatter{Logger: a.logger}
			if !noCache {
				rdb := redis.NewClient(&redis.Options{Addr: a.cfg.RedisURL})
				defer rdb.Close()
				f.Cache = &cache.FormatCache{Client: rdb, TTL: a.cfg.CacheTTL}
			}

			p := &pipeline.Processor{
				Formatter: f,
				Raw:       rawRepo,
				Store:     &repository.FormattedRepository{DB: pool},
				Workers:   a.cfg.WorkerCount,
				Logger:    a.logger,
			}
			res, err := p.Run(ctx, products)
			if err != nil {
				return err
			}
			if res.Failed > 0 {
				return fmt.Errorf("%d of %d products failed", res.Failed, len(products))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the redis format cache")
	return cmd
}

func newEmbedCommand(a *app) *cobra.Command {
	var chunkSize int
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Embed formatted products into the knowledge table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if a.cfg.OpenAIKey == "" {
				return errors.New("OPENAI_API_KEY is not set")
			}
			pool, err := a.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()
			observability.Start(a.cfg.MetricsPort)

			products, err := (&repository.FormattedRepository{DB: pool}).List(ctx)
			if err != nil {
				return err
			}

			w := &embeddings.Worker{
				Embedder:  embeddings.NewOpenAIEmbedder(a.cfg.OpenAIKey),
				Store:     &repository.VectorRepository{DB: pool},
				Workers:   a.cfg.WorkerCount,
				ChunkSize: chunkSize,
				Logger:    a.logger,
			}
			res, err := w.Run(ctx, products)
			if err != nil {
				return err
			}
			a.logger.Info("[Embeddings] finished", zap.Int("embedded", res.Embedded), zap.Int("failed", res.Failed))
			return nil
		},
	}
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 1000, "Characters per embedded chunk")
	return cmd
}
