package service

import (
	"context"

	"github.com/emberwake/merch-cart/internal/catalog"
	"github.com/emberwake/merch-cart/internal/models"
)

type CatalogService interface {
	// ListProducts loads one grid page through the session's feed. On failure
	// the returned view still carries the last good products.
	ListProducts(ctx context.Context, mode models.Mode, session string, filter models.ProductFilter) (catalog.View, error)
	GetProduct(ctx context.Context, mode models.Mode, id string) (*models.Product, error)
	Provider(mode models.Mode) catalog.Provider
}

type catalogService struct {
	static catalog.Provider
	remote catalog.Provider
	feeds  *catalog.FeedRegistry
}

// NewCatalogService serves the remote provider in live mode and the static one
// in demo mode. remote may be nil when no storefront is configured.
func NewCatalogService(static, remote catalog.Provider, feeds *catalog.FeedRegistry) CatalogService {
	return &catalogService{static: static, remote: remote, feeds: feeds}
}

func (s *catalogService) Provider(mode models.Mode) catalog.Provider {
	if mode == models.ModeLive && s.remote != nil {
		return s.remote
	}

	return s.static
}

func (s *catalogService) ListProducts(ctx context.Context, mode models.Mode, session string, filter models.ProductFilter) (catalog.View, error) {
	return s.feeds.Get(string(mode)+":"+session).Load(ctx, s.Provider(mode), filter)
}

func (s *catalogService) GetProduct(ctx context.Context, mode models.Mode, id string) (*models.Product, error) {
	return s.Provider(mode).GetProduct(ctx, id)
}
