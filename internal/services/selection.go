package service

import (
	"context"
	"sort"

	"github.com/emberwake/merch-cart/internal/cart"
	"github.com/emberwake/merch-cart/internal/models"
	"github.com/emberwake/merch-cart/internal/presenter"
	"github.com/emberwake/merch-cart/internal/selection"
)

type SelectionView struct {
	Product    *models.Product      `json:"product"`
	Selected   map[string]string    `json:"selected"`
	Quantity   int                  `json:"quantity"`
	Resolution selection.Resolution `json:"resolution"`
	CanConfirm bool                 `json:"can_confirm"`
}

type SelectionService interface {
	Preview(ctx context.Context, mode models.Mode, productID string, req *models.SelectionRequest) (*SelectionView, error)
	Confirm(ctx context.Context, mode models.Mode, session, productID string, req *models.SelectionRequest) (*presenter.CartView, error)
}

type selectionService struct {
	catalog     CatalogService
	carts       CartService
	maxQuantity int
}

func NewSelectionService(catalog CatalogService, carts CartService, maxQuantity int) SelectionService {
	return &selectionService{catalog: catalog, carts: carts, maxQuantity: maxQuantity}
}

func (s *selectionService) Preview(ctx context.Context, mode models.Mode, productID string, req *models.SelectionRequest) (*SelectionView, error) {

	modal, err := s.open(ctx, mode, productID, req)
	if err != nil {
		return nil, err
	}

	return &SelectionView{
		Product:    modal.Product(),
		Selected:   modal.Selected(),
		Quantity:   modal.Quantity(),
		Resolution: modal.Resolution(),
		CanConfirm: modal.CanConfirm(),
	}, nil
}

func (s *selectionService) Confirm(ctx context.Context, mode models.Mode, session, productID string, req *models.SelectionRequest) (*presenter.CartView, error) {

	modal, err := s.open(ctx, mode, productID, req)
	if err != nil {
		return nil, err
	}

	return s.carts.ConfirmSelection(ctx, mode, session, modal)
}

// open rebuilds the dialog from the request: preselection first, then the
// shopper's choices in a stable order, then the stepper.
func (s *selectionService) open(ctx context.Context, mode models.Mode, productID string, req *models.SelectionRequest) (*selection.Modal, error) {

	product, err := s.catalog.GetProduct(ctx, mode, productID)
	if err != nil {
		return nil, err
	}

	modal := selection.NewModal(s.maxQuantity)
	if err := modal.Open(product); err != nil {
		return nil, err
	}

	if req == nil {
		return modal, nil
	}

	dimensions := make([]string, 0, len(req.Options))
	for name := range req.Options {
		dimensions = append(dimensions, name)
	}
	sort.Strings(dimensions)

	for _, name := range dimensions {
		if err := modal.Select(name, req.Options[name]); err != nil {
			return nil, err
		}
	}

	if req.Quantity != nil {
		quantity, err := cart.ParseWholeNumber(*req.Quantity)
		if err != nil {
			return nil, err
		}
		modal.SetQuantity(quantity)
	}

	return modal, nil
}
