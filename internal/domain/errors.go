package domain

import "errors"

var (
	// ErrPoolLoad is returned when the template pool directory is missing or unreadable
	ErrPoolLoad = errors.New("template pool could not be loaded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrInvalidConfig is returned when configuration values are inconsistent
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRateLimited is returned when a client exceeds its request budget
	ErrRateLimited = errors.New("rate limit exceeded")
)
