// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"craftfolio/internal/httputil"
	"craftfolio/internal/middleware"
	"craftfolio/internal/models"
	"craftfolio/internal/publish"
	"craftfolio/internal/slug"
	"craftfolio/internal/store"
)

// Portfolios groups the owner-scoped portfolio CRUD handlers.
type Portfolios struct {
	store    *store.PortfolioStore
	resolver *publish.Resolver
}

// NewPortfolios creates a new Portfolios handler group.
func NewPortfolios(portfolioStore *store.PortfolioStore, resolver *publish.Resolver) *Portfolios {
	return &Portfolios{store: portfolioStore, resolver: resolver}
}

type createPortfolioRequest struct {
	Title string `json:"title"`
}

// Create makes a new empty portfolio for the caller. The title defaults to
// "Untitled Portfolio" and the slug is derived from it with a random suffix.
func (h *Portfolios) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	var req createPortfolioRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	portfolio, err := h.store.Create(user.ID, req.Title)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	slog.Info("portfolio created", "id", portfolio.ID, "owner", user.ID, "slug", portfolio.Slug)
	httputil.RespondJSON(w, http.StatusCreated, portfolio)
}

// List returns all portfolios owned by the caller.
func (h *Portfolios) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	portfolios, err := h.store.ListByOwner(user.ID)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, portfolios)
}

// Get returns one caller-owned portfolio. A foreign or unknown id is a 404 —
// never a 403, so nothing about other users' documents leaks.
func (h *Portfolios) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	id, ok := portfolioID(w, r)
	if !ok {
		return
	}

	portfolio, err := h.store.FindByIDForOwner(id, user.ID)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	if portfolio == nil {
		httputil.RespondError(w, http.StatusNotFound, "portfolio not found")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, portfolio)
}

// allowedUpdateFields is the full set of keys a PATCH may carry. One key
// outside this set rejects the entire request with nothing applied.
var allowedUpdateFields = map[string]bool{
	"title":       true,
	"components":  true,
	"theme":       true,
	"isPublished": true,
	"slug":        true,
}

// Update applies a partial update to a caller-owned portfolio. The update is
// all-or-nothing: the allow-list check and every field validation run before
// any mutation reaches the store.
func (h *Portfolios) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	id, ok := portfolioID(w, r)
	if !ok {
		return
	}

	var raw map[string]json.RawMessage
	if err := httputil.ParseJSON(w, r, &raw); err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	for key := range raw {
		if !allowedUpdateFields[key] {
			httputil.RespondError(w, http.StatusBadRequest, "invalid updates")
			return
		}
	}

	upd, err := decodeUpdate(raw)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	existing, err := h.store.FindByIDForOwner(id, user.ID)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	if existing == nil {
		httputil.RespondError(w, http.StatusNotFound, "portfolio not found")
		return
	}

	// Publishing through the update path still requires a slug to exist.
	if upd.IsPublished != nil && *upd.IsPublished {
		target := existing.Slug
		if upd.Slug != nil {
			target = *upd.Slug
		}
		if target == "" {
			httputil.RespondDomainError(w, fmt.Errorf("%w: slug must not be empty when publishing", models.ErrValidation))
			return
		}
	}

	updated, err := h.store.Update(id, user.ID, upd)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	if updated == nil {
		httputil.RespondError(w, http.StatusNotFound, "portfolio not found")
		return
	}

	// Drop any cached copy under both the old and the new slug.
	h.resolver.Invalidate(r.Context(), existing.Slug, updated.Slug)

	httputil.RespondJSON(w, http.StatusOK, updated)
}

type publishRequest struct {
	Slug string `json:"slug"`
}

// Publish flips a portfolio to published, optionally under a new slug.
// A slug collision is a 409 and leaves the document unpublished.
func (h *Portfolios) Publish(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	id, ok := portfolioID(w, r)
	if !ok {
		return
	}

	var req publishRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	published, err := h.resolver.Publish(r.Context(), user.ID, id, req.Slug)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	slog.Info("portfolio published", "id", published.ID, "slug", published.Slug)
	httputil.RespondJSON(w, http.StatusOK, published)
}

// Delete removes a caller-owned portfolio and returns the deleted document.
// The row removal takes the ownership reference with it; no orphaned
// reference can remain.
func (h *Portfolios) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	id, ok := portfolioID(w, r)
	if !ok {
		return
	}

	deleted, err := h.store.Delete(id, user.ID)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	if deleted == nil {
		httputil.RespondError(w, http.StatusNotFound, "portfolio not found")
		return
	}

	h.resolver.Invalidate(r.Context(), deleted.Slug)

	slog.Info("portfolio deleted", "id", deleted.ID, "owner", user.ID)
	httputil.RespondJSON(w, http.StatusOK, deleted)
}

// decodeUpdate turns raw allow-listed fields into a typed update, validating
// enum membership and normalizing the slug. Errors wrap models.ErrValidation.
func decodeUpdate(raw map[string]json.RawMessage) (models.PortfolioUpdate, error) {
	var upd models.PortfolioUpdate

	if data, ok := raw["title"]; ok {
		var title string
		if err := json.Unmarshal(data, &title); err != nil {
			return upd, fmt.Errorf("%w: title must be a string", models.ErrValidation)
		}
		upd.Title = &title
	}

	if data, ok := raw["components"]; ok {
		var blocks []models.ContentBlock
		if err := json.Unmarshal(data, &blocks); err != nil {
			return upd, fmt.Errorf("%w: malformed components", models.ErrValidation)
		}
		for _, b := range blocks {
			if !b.Type.Valid() {
				return upd, fmt.Errorf("%w: unknown block type %q", models.ErrValidation, b.Type)
			}
		}
		upd.Components = &blocks
	}

	if data, ok := raw["theme"]; ok {
		var theme models.Theme
		if err := json.Unmarshal(data, &theme); err != nil || !theme.Valid() {
			return upd, fmt.Errorf("%w: unknown theme", models.ErrValidation)
		}
		upd.Theme = &theme
	}

	if data, ok := raw["isPublished"]; ok {
		var published bool
		if err := json.Unmarshal(data, &published); err != nil {
			return upd, fmt.Errorf("%w: isPublished must be a boolean", models.ErrValidation)
		}
		upd.IsPublished = &published
	}

	if data, ok := raw["slug"]; ok {
		var rawSlug string
		if err := json.Unmarshal(data, &rawSlug); err != nil {
			return upd, fmt.Errorf("%w: slug must be a string", models.ErrValidation)
		}
		normalized := slug.Normalize(rawSlug)
		if normalized == "" {
			return upd, fmt.Errorf("%w: slug must not be empty", models.ErrValidation)
		}
		upd.Slug = &normalized
	}

	return upd, nil
}

// portfolioID parses the {id} URL parameter. A malformed id cannot resolve
// to any document, so it reads as not-found.
func portfolioID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, "portfolio not found")
		return uuid.Nil, false
	}
	return id, true
}
