package service

import (
	"context"
	"log/slog"

	"github.com/emberwake/merch-cart/internal/api/middleware"
	"github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/models"
	"github.com/emberwake/merch-cart/pkg/storefront"
)

const demoCheckoutMessage = "Demo Mode: Checkout would redirect to the store"

type CheckoutService interface {
	Checkout(ctx context.Context, mode models.Mode, session string) (*models.CheckoutHandoff, error)
}

type checkoutService struct {
	carts  CartService
	client storefront.Client
}

// NewCheckoutService hands live carts to the storefront. client may be nil
// when no storefront is configured.
func NewCheckoutService(carts CartService, client storefront.Client) CheckoutService {
	return &checkoutService{carts: carts, client: client}
}

func (s *checkoutService) Checkout(ctx context.Context, mode models.Mode, session string) (*models.CheckoutHandoff, error) {

	logger := middleware.LoggerFromContext(ctx)

	c, err := s.carts.Snapshot(ctx, mode, session)
	if err != nil {
		return nil, err
	}

	if c.IsEmpty() {
		return nil, errors.ValidationError("Your cart is empty")
	}

	if mode == models.ModeDemo {
		logger.Info("Demo checkout requested", slog.Int("items", c.ItemCount()))
		return &models.CheckoutHandoff{Message: demoCheckoutMessage, Demo: true}, nil
	}

	if s.client == nil {
		return nil, errors.ConfigurationMissingError("Storefront is not configured")
	}

	lines := make([]storefront.CheckoutLine, 0, c.Len())
	for _, line := range c.Lines() {
		lines = append(lines, storefront.CheckoutLine{VariantID: line.VariantID, Quantity: line.Quantity})
	}

	url, err := s.client.CheckoutURL(lines)
	if err != nil {
		return nil, errors.InternalError("Failed to build checkout link").WithError(err)
	}

	logger.Info("Checkout handed off", slog.Int("lines", len(lines)), slog.Int("items", c.ItemCount()))

	return &models.CheckoutHandoff{URL: url}, nil
}
