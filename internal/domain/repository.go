package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching resolved catalogs
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// DimensionMeasurer reports the pixel size of an image file
type DimensionMeasurer interface {
	Dimensions(path string) (width, height int, err error)
}
