package builder

import (
	"context"

	"craftfolio/internal/models"
	"craftfolio/internal/publish"
	"craftfolio/internal/store"
)

// StoreGateway persists sessions straight through the portfolio store and
// the publish resolver. It is the gateway used when the builder runs in the
// same process as the API.
type StoreGateway struct {
	portfolios *store.PortfolioStore
	resolver   *publish.Resolver
}

// NewStoreGateway creates a store-backed session gateway.
func NewStoreGateway(portfolios *store.PortfolioStore, resolver *publish.Resolver) *StoreGateway {
	return &StoreGateway{portfolios: portfolios, resolver: resolver}
}

// Save writes the draft's editable fields through the owner-scoped update
// path. Publish state is not touched here: that transition belongs to the
// resolver.
func (g *StoreGateway) Save(ctx context.Context, doc *models.Portfolio) (*models.Portfolio, error) {
	upd := models.PortfolioUpdate{
		Title:      &doc.Title,
		Components: &doc.Components,
		Theme:      &doc.Theme,
		Slug:       &doc.Slug,
	}
	saved, err := g.portfolios.Update(doc.ID, doc.OwnerID, upd)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, models.ErrNotFound
	}
	g.resolver.Invalidate(ctx, doc.Slug, saved.Slug)
	return saved, nil
}

// Publish delegates to the publish resolver.
func (g *StoreGateway) Publish(ctx context.Context, doc *models.Portfolio, slug string) (*models.Portfolio, error) {
	return g.resolver.Publish(ctx, doc.OwnerID, doc.ID, slug)
}
