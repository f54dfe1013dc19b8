// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"craftfolio/internal/models"
	"craftfolio/internal/slug"
)

// createRetries is how many fresh random suffixes Create tries before giving
// up on a generated-slug collision.
const createRetries = 3

// PortfolioStore handles all portfolio-related database operations.
// Every owner-facing method is scoped by owner_id so a foreign document is
// indistinguishable from a missing one.
type PortfolioStore struct {
	db *sql.DB
}

// NewPortfolioStore creates a new PortfolioStore with the given database connection.
func NewPortfolioStore(db *sql.DB) *PortfolioStore {
	return &PortfolioStore{db: db}
}

const portfolioColumns = `id, owner_id, title, slug, components, theme, is_published, created_at, updated_at`

// scanPortfolio reads one portfolio row, decoding the JSONB components column.
func scanPortfolio(row interface{ Scan(...any) error }) (*models.Portfolio, error) {
	p := &models.Portfolio{}
	var components []byte
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Slug, &components,
		&p.Theme, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(components, &p.Components); err != nil {
		return nil, fmt.Errorf("decode components: %w", err)
	}
	if p.Components == nil {
		p.Components = []models.ContentBlock{}
	}
	return p, nil
}

// Create inserts an empty portfolio for the owner. The default slug is
// derived from the title plus a random suffix; on the rare collision a fresh
// suffix is tried. Ownership is the owner_id column, so the document and the
// owner's reference to it come into existence in one atomic statement.
func (s *PortfolioStore) Create(ownerID uuid.UUID, title string) (*models.Portfolio, error) {
	if strings.TrimSpace(title) == "" {
		title = models.DefaultTitle
	}

	var lastErr error
	for i := 0; i < createRetries; i++ {
		candidate := slug.WithSuffix(title)
		p, err := scanPortfolio(s.db.QueryRow(`
			INSERT INTO portfolios (owner_id, title, slug)
			VALUES ($1, $2, $3)
			RETURNING `+portfolioColumns, ownerID, title, candidate))
		if isUniqueViolation(err) {
			lastErr = err
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create portfolio: %w", err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("create portfolio: %w: %v", models.ErrSlugTaken, lastErr)
}

// ListByOwner returns all portfolios owned by the given user, newest first.
func (s *PortfolioStore) ListByOwner(ownerID uuid.UUID) ([]models.Portfolio, error) {
	rows, err := s.db.Query(`
		SELECT `+portfolioColumns+`
		FROM portfolios WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list portfolios: %w", err)
	}
	defer rows.Close()

	portfolios := []models.Portfolio{}
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, fmt.Errorf("scan portfolio: %w", err)
		}
		portfolios = append(portfolios, *p)
	}
	return portfolios, rows.Err()
}

// FindByIDForOwner retrieves one portfolio scoped to its owner. Returns nil
// when the id does not exist or belongs to someone else.
func (s *PortfolioStore) FindByIDForOwner(id, ownerID uuid.UUID) (*models.Portfolio, error) {
	p, err := scanPortfolio(s.db.QueryRow(`
		SELECT `+portfolioColumns+`
		FROM portfolios WHERE id = $1 AND owner_id = $2
	`, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find portfolio by id: %w", err)
	}
	return p, nil
}

// FindPublishedBySlug retrieves a portfolio by slug only if it is published.
// Draft documents are invisible on this path regardless of who asks.
func (s *PortfolioStore) FindPublishedBySlug(slugValue string) (*models.Portfolio, error) {
	p, err := scanPortfolio(s.db.QueryRow(`
		SELECT `+portfolioColumns+`
		FROM portfolios WHERE slug = $1 AND is_published = TRUE
	`, slugValue))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find portfolio by slug: %w", err)
	}
	return p, nil
}

// Update applies the allow-listed fields to an owner's portfolio in a single
// statement: every provided field lands, or none do. Component order is
// renumbered before persisting so gaps never reach storage. A slug collision
// returns models.ErrSlugTaken; an unknown id or foreign owner returns nil.
func (s *PortfolioStore) Update(id, ownerID uuid.UUID, upd models.PortfolioUpdate) (*models.Portfolio, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{}
	idx := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Components != nil {
		blocks := *upd.Components
		models.NormalizeOrder(blocks)
		encoded, err := json.Marshal(blocks)
		if err != nil {
			return nil, fmt.Errorf("encode components: %w", err)
		}
		add("components", encoded)
	}
	if upd.Theme != nil {
		add("theme", *upd.Theme)
	}
	if upd.IsPublished != nil {
		add("is_published", *upd.IsPublished)
	}
	if upd.Slug != nil {
		add("slug", *upd.Slug)
	}

	query := fmt.Sprintf(`
		UPDATE portfolios SET %s
		WHERE id = $%d AND owner_id = $%d
		RETURNING %s`, strings.Join(sets, ", "), idx, idx+1, portfolioColumns)
	args = append(args, id, ownerID)

	p, err := scanPortfolio(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if isUniqueViolation(err) {
		return nil, models.ErrSlugTaken
	}
	if err != nil {
		return nil, fmt.Errorf("update portfolio: %w", err)
	}
	return p, nil
}

// Publish flips a portfolio to published with the given slug. The unique
// index rejects a slug held by any other document, in which case the
// portfolio stays unpublished and models.ErrSlugTaken is returned.
func (s *PortfolioStore) Publish(id, ownerID uuid.UUID, slugValue string) (*models.Portfolio, error) {
	p, err := scanPortfolio(s.db.QueryRow(`
		UPDATE portfolios SET is_published = TRUE, slug = $1, updated_at = NOW()
		WHERE id = $2 AND owner_id = $3
		RETURNING `+portfolioColumns, slugValue, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if isUniqueViolation(err) {
		return nil, models.ErrSlugTaken
	}
	if err != nil {
		return nil, fmt.Errorf("publish portfolio: %w", err)
	}
	return p, nil
}

// Delete removes an owner's portfolio and returns the deleted document.
// The owner reference disappears with the row itself, so no orphaned
// reference can survive. Returns nil if the id is unknown or foreign.
func (s *PortfolioStore) Delete(id, ownerID uuid.UUID) (*models.Portfolio, error) {
	p, err := scanPortfolio(s.db.QueryRow(`
		DELETE FROM portfolios WHERE id = $1 AND owner_id = $2
		RETURNING `+portfolioColumns, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete portfolio: %w", err)
	}
	return p, nil
}

// ListPublishedByOwners returns the published portfolios of every user,
// keyed by owner id. Used by the admin aggregation view.
func (s *PortfolioStore) ListPublishedByOwners() (map[uuid.UUID][]models.Portfolio, error) {
	rows, err := s.db.Query(`
		SELECT ` + portfolioColumns + `
		FROM portfolios WHERE is_published = TRUE
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list published portfolios: %w", err)
	}
	defer rows.Close()

	byOwner := make(map[uuid.UUID][]models.Portfolio)
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, fmt.Errorf("scan portfolio: %w", err)
		}
		byOwner[p.OwnerID] = append(byOwner[p.OwnerID], *p)
	}
	return byOwner, rows.Err()
}
