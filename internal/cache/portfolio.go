// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// portfolio.go provides a Valkey-backed cache of published portfolios.
// The public slug endpoint serves the encoded JSON document straight from
// Valkey on a hit, skipping the database entirely. Writers invalidate the
// slug on every update, publish, and delete.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// portfolioKeyPrefix namespaces cached portfolio keys in Valkey.
	portfolioKeyPrefix = "portfolio:"

	// DefaultPortfolioTTL is how long a published portfolio stays cached.
	DefaultPortfolioTTL = 5 * time.Minute
)

// PortfolioCache stores the JSON encoding of published portfolios by slug.
type PortfolioCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPortfolioCache creates a portfolio cache backed by the given Valkey client.
func NewPortfolioCache(client *redis.Client, ttl time.Duration) *PortfolioCache {
	if ttl == 0 {
		ttl = DefaultPortfolioTTL
	}
	return &PortfolioCache{client: client, ttl: ttl}
}

// Get retrieves the cached JSON for a slug. Returns false on miss. Cache
// errors degrade to a miss — the database remains the source of truth.
func (pc *PortfolioCache) Get(ctx context.Context, slug string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, portfolioKeyPrefix+slug).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("portfolio cache get error", "slug", slug, "error", err)
		return nil, false
	}
	slog.Debug("portfolio cache hit", "slug", slug)
	return val, true
}

// Set stores the encoded portfolio for a slug with the configured TTL.
func (pc *PortfolioCache) Set(ctx context.Context, slug string, payload []byte) {
	if err := pc.client.Set(ctx, portfolioKeyPrefix+slug, payload, pc.ttl).Err(); err != nil {
		slog.Warn("portfolio cache set error", "slug", slug, "error", err)
	}
}

// Invalidate removes a single cached portfolio by slug. Callers pass every
// slug a mutation could have affected — on a slug change that is both the
// old and the new value.
func (pc *PortfolioCache) Invalidate(ctx context.Context, slugs ...string) {
	for _, slug := range slugs {
		if slug == "" {
			continue
		}
		if err := pc.client.Del(ctx, portfolioKeyPrefix+slug).Err(); err != nil {
			slog.Warn("portfolio cache invalidate error", "slug", slug, "error", err)
			continue
		}
		slog.Debug("portfolio cache invalidated", "slug", slug)
	}
}
