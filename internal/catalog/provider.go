// Package catalog provides the product sources behind the merch grid.
package catalog

import (
	"context"

	"github.com/emberwake/merch-cart/internal/models"
)

// Provider is implemented by every catalog source. Filtering semantics are
// shared through models.ProductFilter so sources cannot diverge.
type Provider interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

type Source string

const (
	SourceStatic Source = "static"
	SourceRemote Source = "remote"
)
