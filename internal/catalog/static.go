package catalog

import (
	"context"

	appErrors "github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/models"
)

// StaticProvider serves a fixed in-memory product list. It never fails.
type StaticProvider struct {
	products []*models.Product
}

func NewStaticProvider(products []*models.Product) *StaticProvider {
	return &StaticProvider{products: products}
}

func (s *StaticProvider) ListProducts(_ context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	return filter.Apply(s.products), nil
}

func (s *StaticProvider) GetProduct(_ context.Context, id string) (*models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}

	return nil, appErrors.NotFoundError("Product not found")
}
