// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Theme identifies one of the fixed visual themes a portfolio can use.
type Theme string

const (
	ThemeClassic  Theme = "classic"
	ThemeModern   Theme = "modern"
	ThemeMinimal  Theme = "minimal"
	ThemeCreative Theme = "creative"
)

// Valid reports whether t is a member of the closed theme enum.
func (t Theme) Valid() bool {
	switch t {
	case ThemeClassic, ThemeModern, ThemeMinimal, ThemeCreative:
		return true
	}
	return false
}

// DefaultTitle is assigned to portfolios created without an explicit title.
const DefaultTitle = "Untitled Portfolio"

// Portfolio is the document a user assembles and publishes. Ownership never
// transfers. The slug is unique across all portfolios system-wide; the
// database unique index is the authoritative guarantee.
type Portfolio struct {
	ID          uuid.UUID      `json:"id"`
	OwnerID     uuid.UUID      `json:"owner_id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Components  []ContentBlock `json:"components"`
	Theme       Theme          `json:"theme"`
	IsPublished bool           `json:"is_published"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// PortfolioUpdate carries the fields the update path may change. Nil means
// "leave unchanged". The allow-list itself is enforced where the request is
// decoded; anything outside these five fields rejects the whole update.
type PortfolioUpdate struct {
	Title       *string
	Components  *[]ContentBlock
	Theme       *Theme
	IsPublished *bool
	Slug        *string
}

// PublishedRef is the admin projection of one published portfolio.
type PublishedRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
	URL   string    `json:"url"`
}
