package gateway

import (
	"context"
	"log"

	"github.com/naka-gawa/devinsight/internal/cache"
	"github.com/naka-gawa/devinsight/internal/domain"
)

// CachedFetcher serves each endpoint from the cache while the entry is fresh
// and falls through to the wrapped Fetcher otherwise. Failures are never cached.
type CachedFetcher struct {
	next   Fetcher
	cache  *cache.Cache
	logger *log.Logger
}

// NewCachedFetcher wraps next with c.
func NewCachedFetcher(next Fetcher, c *cache.Cache, logger *log.Logger) *CachedFetcher {
	return &CachedFetcher{next: next, cache: c, logger: logger}
}

func (f *CachedFetcher) FetchAccount(ctx context.Context, username string) (domain.RawAccount, error) {
	return cached(f, "account:"+username, func() (domain.RawAccount, error) {
		return f.next.FetchAccount(ctx, username)
	})
}

func (f *CachedFetcher) FetchRepositories(ctx context.Context, username string) ([]domain.RawRepository, error) {
	return cached(f, "repos:"+username, func() ([]domain.RawRepository, error) {
		return f.next.FetchRepositories(ctx, username)
	})
}

func (f *CachedFetcher) FetchOrganizations(ctx context.Context, username string) ([]domain.RawOrganization, error) {
	return cached(f, "orgs:"+username, func() ([]domain.RawOrganization, error) {
		return f.next.FetchOrganizations(ctx, username)
	})
}

func cached[T any](f *CachedFetcher, key string, fetch func() (T, error)) (T, error) {
	if v, ok := f.cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			f.logger.Printf("  Cache hit for %s\n", key)
			return typed, nil
		}
	}
	v, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	f.cache.Set(key, v)
	return v, nil
}
