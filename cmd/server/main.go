package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/annai/backend/config"
	httpDelivery "github.com/annai/backend/internal/delivery/http"
	"github.com/annai/backend/internal/domain"
	"github.com/annai/backend/internal/infrastructure/cache"
	"github.com/annai/backend/internal/infrastructure/logger"
	"github.com/annai/backend/internal/infrastructure/pool"
	"github.com/annai/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting catalog backend",
		zap.String("version", httpDelivery.Version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("origin", cfg.Server.Origin))

	// Load the template pool once; it is read-only from here on
	files, err := pool.NewScanner(pool.ImageMeasurer{}, zapLogger).Scan(cfg.Pool.Dir)
	if err != nil {
		zapLogger.Fatal("failed to load template pool", zap.String("dir", cfg.Pool.Dir), zap.Error(err))
	}
	templates := usecase.NewTemplatePool(files, usecase.PoolOptions{
		PrefixLength: cfg.Pool.PrefixLength,
		PublicPath:   cfg.Pool.PublicPath,
	})
	zapLogger.Info("template pool loaded",
		zap.String("dir", cfg.Pool.Dir),
		zap.Int("templates", templates.Len()))

	resultCache, closeCache := newCache(cfg.Cache, zapLogger)
	defer closeCache()

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(
		usecase.NewResolver(templates, zapLogger),
		resultCache,
		usecase.CatalogServiceConfig{CacheTTL: cfg.Cache.TTL},
		zapLogger,
	)

	handler := httpDelivery.NewHandler(catalogService, zapLogger)
	router := httpDelivery.SetupRouter(cfg, handler, zapLogger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	case sig := <-quit:
		zapLogger.Info("shutting down server", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			zapLogger.Error("server forced to shutdown", zap.Error(err))
		}
	}

	zapLogger.Info("server exiting")
}

// newCache builds the result cache selected in the configuration. An unreachable
// redis falls back to the in-memory cache. The returned func releases the cache.
func newCache(cfg config.CacheConfig, zapLogger *zap.Logger) (domain.CacheRepository, func()) {
	noop := func() {}

	switch cfg.Type {
	case "none":
		zapLogger.Info("result cache disabled")
		return nil, noop

	case "redis":
		redisCache, err := cache.NewRedisCache(cfg.RedisURL)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = redisCache.Ping(ctx)
			cancel()
			if err == nil {
				zapLogger.Info("using redis result cache", zap.Duration("ttl", cfg.TTL))
				return redisCache, func() { _ = redisCache.Close() }
			}
			_ = redisCache.Close()
		}
		zapLogger.Warn("redis unavailable, falling back to memory cache", zap.Error(err))
	}

	memoryCache, err := cache.NewMemoryCache(cfg.Size)
	if err != nil {
		zapLogger.Fatal("failed to create memory cache", zap.Error(err))
	}
	zapLogger.Info("using memory result cache",
		zap.Int("size", cfg.Size),
		zap.Duration("ttl", cfg.TTL))
	return memoryCache, noop
}
