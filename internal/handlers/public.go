// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"craftfolio/internal/cache"
	"craftfolio/internal/httputil"
	"craftfolio/internal/store"
)

// Public serves published portfolios by slug with no authentication.
// It checks the Valkey cache before hitting the database and stores the
// encoded document on a miss.
type Public struct {
	store *store.PortfolioStore
	cache *cache.PortfolioCache
}

// NewPublic creates a new Public handler group. cache may be nil when
// Valkey is not configured.
func NewPublic(portfolioStore *store.PortfolioStore, portfolioCache *cache.PortfolioCache) *Public {
	return &Public{store: portfolioStore, cache: portfolioCache}
}

// PortfolioBySlug returns the published portfolio under the given slug.
// Published status is the sole visibility gate: a draft with this slug is
// indistinguishable from a slug that does not exist.
func (p *Public) PortfolioBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugValue := chi.URLParam(r, "slug")

	if p.cache != nil {
		if payload, ok := p.cache.Get(ctx, slugValue); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(payload)
			return
		}
	}

	portfolio, err := p.store.FindPublishedBySlug(slugValue)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	if portfolio == nil {
		httputil.RespondError(w, http.StatusNotFound, "portfolio not found")
		return
	}

	payload, err := json.Marshal(portfolio)
	if err != nil {
		slog.Error("portfolio encoding failed", "slug", slugValue, "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if p.cache != nil {
		p.cache.Set(ctx, slugValue, payload)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}
