package cache

import (
	"context"
	"time"

	"github.com/complaint-map/internal/domain/repository"
)

// noopCache is used when Redis is not configured; every lookup misses
type noopCache struct{}

func NewNoopCache() repository.CacheRepository {
	return noopCache{}
}

func (noopCache) Get(context.Context, string) ([]byte, error) { return nil, nil }

func (noopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (noopCache) Delete(context.Context, string) error { return nil }

func (noopCache) Exists(context.Context, string) (bool, error) { return false, nil }
