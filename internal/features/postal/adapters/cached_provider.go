package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dispatch-console/internal/core/cache"
	"dispatch-console/internal/features/postal/domain"
	"dispatch-console/internal/features/postal/ports"

	"go.uber.org/zap"
)

// CachedProvider memoizes resolved addresses in the cache. Lookup failures are
// not cached, and cache failures fall through to the upstream provider.
type CachedProvider struct {
	next  ports.AddressProvider
	cache cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

// NewCachedProvider wraps next with cache c.
func NewCachedProvider(next ports.AddressProvider, c cache.Cache, ttl time.Duration, log *zap.Logger) *CachedProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedProvider{next: next, cache: c, ttl: ttl, log: log}
}

// Lookup implements AddressProvider.
func (p *CachedProvider) Lookup(ctx context.Context, postalCode string) (*domain.Address, error) {
	key := "postal:" + postalCode

	data, err := p.cache.Get(ctx, key)
	switch {
	case err == nil:
		var addr domain.Address
		if err := json.Unmarshal(data, &addr); err == nil {
			return &addr, nil
		}
		p.log.Warn("Discarding corrupt cache entry", zap.String("key", key))
	case !errors.Is(err, cache.ErrCacheMiss):
		p.log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	addr, err := p.next.Lookup(ctx, postalCode)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(addr); err == nil {
		if err := p.cache.Set(ctx, key, data, p.ttl); err != nil {
			p.log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return addr, nil
}
