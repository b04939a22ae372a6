// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ManuGH/statusbot/internal/cache"
	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
	"github.com/ManuGH/statusbot/internal/log"
	"github.com/ManuGH/statusbot/internal/metrics"
	"github.com/rs/zerolog"
)

// Lister reads the product listing.
type Lister interface {
	ListProducts(ctx context.Context) ([]model.Candidate, error)
}

// CachedLister serves the listing from a cache for a short TTL. Failures are
// never cached.
type CachedLister struct {
	inner  Lister
	cache  cache.Cache
	key    string
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedLister wraps inner. A non-positive ttl returns inner unchanged.
func NewCachedLister(inner Lister, c cache.Cache, shopID string, ttl time.Duration) Lister {
	if ttl <= 0 || c == nil {
		return inner
	}
	return &CachedLister{
		inner:  inner,
		cache:  c,
		key:    "catalog:products:" + shopID,
		ttl:    ttl,
		logger: log.WithComponent("catalog.cache"),
	}
}

func (l *CachedLister) ListProducts(ctx context.Context) ([]model.Candidate, error) {
	if raw, ok := l.cache.Get(ctx, l.key); ok {
		var products []model.Candidate
		if err := json.Unmarshal(raw, &products); err == nil {
			metrics.RecordListingCache("hit")
			return products, nil
		}
		metrics.RecordListingCache("error")
		l.cache.Delete(ctx, l.key)
	} else {
		metrics.RecordListingCache("miss")
	}

	products, err := l.inner.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(products)
	if err != nil {
		l.logger.Warn().Err(err).Str(log.FieldEvent, "catalog.cache_encode_failed").Msg("listing not cached")
		return products, nil
	}
	l.cache.Set(ctx, l.key, raw, l.ttl)
	return products, nil
}
