package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mirrow/internal/api"
	"mirrow/internal/cache"
	"mirrow/internal/config"
	"mirrow/internal/db"
	"mirrow/internal/logging"
	"mirrow/internal/observability"
	"mirrow/internal/pipeline"
	"mirrow/internal/repository"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	observability.Start(cfg.MetricsPort)

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})
	defer redisClient.Close()

	h := &api.Handler{
		Formatter: &pipeline.CachedFormatter{
			Cache:  &cache.FormatCache{Client: redisClient, TTL: cfg.CacheTTL},
			Logger: logger,
		},
		Logger: logger,
	}

	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("[Server] connecting to postgres", zap.Error(err))
		}
		defer pool.Close()
		h.Products = &repository.FormattedRepository{DB: pool}
	} else {
		logger.Warn("[Server] DATABASE_URL not set, product lookups disabled")
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("[Server] listening", zap.String("addr", cfg.HTTPAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("[Server] http server stopped", zap.Error(err))
	}
}
