package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/annai/backend/internal/domain"
	"github.com/annai/backend/internal/infrastructure/metrics"
)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	CacheTTL time.Duration
}

// CatalogService serves product catalogs, caching resolved queries
type CatalogService struct {
	resolver *Resolver
	cache    domain.CacheRepository
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewCatalogService creates a catalog service. cache may be nil to disable caching.
func NewCatalogService(
	resolver *Resolver,
	cache domain.CacheRepository,
	config CatalogServiceConfig,
	logger *zap.Logger,
) *CatalogService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics.TemplatesLoaded.Set(float64(resolver.Pool().Len()))

	return &CatalogService{
		resolver: resolver,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.Named("catalog"),
	}
}

// SearchProducts returns the catalog of a query.
// Flow: canonicalize -> check cache -> resolve -> cache -> return
// Rejected queries give an empty list; the only error is a cancelled context.
func (s *CatalogService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	canonical := Canonicalize(query)
	if canonical == "" {
		metrics.QueriesTotal.WithLabelValues("empty").Inc()
		return []domain.Product{}, nil
	}

	cacheKey := generateCacheKey(canonical)

	// Try cache first
	if products, ok := s.getFromCache(ctx, cacheKey); ok {
		s.observe(products)
		return products, nil
	}

	start := time.Now()
	products := s.resolver.Resolve(canonical)
	metrics.ResolveDuration.Observe(time.Since(start).Seconds())

	// Cache failures never fail the request
	s.setInCache(ctx, cacheKey, products)

	s.observe(products)
	return products, nil
}

// Explain resolves a query without the cache and reports intermediate state
func (s *CatalogService) Explain(query string) *domain.Resolution {
	return s.resolver.Explain(query)
}

// Select returns the templates owned by brand, in selection order
func (s *CatalogService) Select(brand string) []*domain.Template {
	return Select(brand, s.resolver.Pool())
}

// Templates returns the template pool in filename order
func (s *CatalogService) Templates() []*domain.Template {
	return s.resolver.Pool().All()
}

// generateCacheKey creates the cache key of a canonical query.
// Format: "products:{canonical_query}"
func generateCacheKey(canonical string) string {
	return "products:" + canonical
}

// getFromCache retrieves a resolved catalog from cache
func (s *CatalogService) getFromCache(ctx context.Context, key string) ([]domain.Product, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		} else {
			metrics.CacheLookups.WithLabelValues("error").Inc()
			s.logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if products == nil {
		products = []domain.Product{}
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return products, true
}

// setInCache stores a resolved catalog in cache
func (s *CatalogService) setInCache(ctx context.Context, key string, products []domain.Product) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(products)
	if err != nil {
		s.logger.Warn("could not encode catalog for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("cache store failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *CatalogService) observe(products []domain.Product) {
	outcome := "found"
	if len(products) == 0 {
		outcome = "empty"
	}
	metrics.QueriesTotal.WithLabelValues(outcome).Inc()
	metrics.ProductsReturned.Observe(float64(len(products)))
}
