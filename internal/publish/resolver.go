// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package publish gates the draft-to-published transition and owns slug
// assignment rules. Uniqueness itself is enforced by the database unique
// index; this package turns a violation into a recoverable conflict error
// and keeps the cache consistent with what readers can fetch.
package publish

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"craftfolio/internal/cache"
	"craftfolio/internal/models"
	"craftfolio/internal/slug"
	"craftfolio/internal/store"
)

// Resolver validates and persists the publish transition.
type Resolver struct {
	portfolios *store.PortfolioStore
	cache      *cache.PortfolioCache
}

// NewResolver creates a Resolver. cache may be nil when Valkey is not
// configured; invalidation then becomes a no-op.
func NewResolver(portfolios *store.PortfolioStore, portfolioCache *cache.PortfolioCache) *Resolver {
	return &Resolver{portfolios: portfolios, cache: portfolioCache}
}

// Publish flips the owner's portfolio to published under the given slug.
// An empty rawSlug keeps the document's current slug. The slug is normalized
// (lowercased, whitespace runs to hyphens) and must be non-empty after that.
// A slug held by a different document returns models.ErrSlugTaken and leaves
// the document unpublished: there is no partial publish.
func (r *Resolver) Publish(ctx context.Context, ownerID, id uuid.UUID, rawSlug string) (*models.Portfolio, error) {
	current, err := r.portfolios.FindByIDForOwner(id, ownerID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, models.ErrNotFound
	}

	target := slug.Normalize(rawSlug)
	if target == "" {
		target = current.Slug
	}
	if target == "" {
		return nil, fmt.Errorf("%w: slug must not be empty", models.ErrValidation)
	}

	published, err := r.portfolios.Publish(id, ownerID, target)
	if err != nil {
		return nil, err
	}
	if published == nil {
		return nil, models.ErrNotFound
	}

	r.invalidate(ctx, current.Slug, published.Slug)
	return published, nil
}

// Invalidate drops cached entries for the given slugs. Exposed so the update
// and delete paths can keep the public cache coherent through the same
// component that owns publishing.
func (r *Resolver) Invalidate(ctx context.Context, slugs ...string) {
	r.invalidate(ctx, slugs...)
}

func (r *Resolver) invalidate(ctx context.Context, slugs ...string) {
	if r.cache == nil {
		return
	}
	r.cache.Invalidate(ctx, slugs...)
}
