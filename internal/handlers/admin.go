// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"craftfolio/internal/httputil"
	"craftfolio/internal/models"
	"craftfolio/internal/store"
)

// Admin serves the moderation view of the platform. Routes in this group sit
// behind both authentication and the admin check.
type Admin struct {
	users      *store.UserStore
	portfolios *store.PortfolioStore
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(users *store.UserStore, portfolios *store.PortfolioStore) *Admin {
	return &Admin{users: users, portfolios: portfolios}
}

// adminUser is the per-account row of the admin listing. Credential fields
// never appear here: the projection carries identity plus published work only.
type adminUser struct {
	ID                  uuid.UUID             `json:"id"`
	Name                string                `json:"name"`
	Email               string                `json:"email"`
	IsAdmin             bool                  `json:"is_admin"`
	PublishedPortfolios []models.PublishedRef `json:"published_portfolios"`
}

// Users returns every account with its published portfolios. Drafts are
// excluded, and an account with nothing published still appears with an
// empty list rather than null.
func (a *Admin) Users(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.List()
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	published, err := a.portfolios.ListPublishedByOwners()
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	out := make([]adminUser, 0, len(users))
	for _, u := range users {
		refs := make([]models.PublishedRef, 0)
		for _, p := range published[u.ID] {
			refs = append(refs, models.PublishedRef{
				ID:    p.ID,
				Title: p.Title,
				Slug:  p.Slug,
				URL:   "/portfolio/" + p.Slug,
			})
		}
		out = append(out, adminUser{
			ID:                  u.ID,
			Name:                u.Name,
			Email:               u.Email,
			IsAdmin:             u.IsAdmin,
			PublishedPortfolios: refs,
		})
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]any{"users": out})
}
