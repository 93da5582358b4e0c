package repository

import (
	"context"
	"time"
)

// CacheRepository stores serialized collaborator responses
type CacheRepository interface {
	// Get returns nil, nil on cache miss
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)
}
