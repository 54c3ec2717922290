package service

import (
	"context"

	"github.com/emberwake/merch-cart/internal/api/middleware"
	"github.com/emberwake/merch-cart/internal/cart"
	"github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/metrics"
	"github.com/emberwake/merch-cart/internal/models"
	"github.com/emberwake/merch-cart/internal/presenter"
	repository "github.com/emberwake/merch-cart/internal/repositories"
	"github.com/emberwake/merch-cart/internal/selection"
)

const (
	noticeAdded   = "Product added to cart!"
	noticeRemoved = "Item removed from cart"
	noticeCleared = "Started a new cart"
)

type CartService interface {
	GetCart(ctx context.Context, mode models.Mode, session string) (*presenter.CartView, error)
	AddItem(ctx context.Context, mode models.Mode, session string, req *models.AddItemRequest) (*presenter.CartView, error)
	UpdateQuantity(ctx context.Context, mode models.Mode, session string, req *models.UpdateQuantityRequest) (*presenter.CartView, error)
	RemoveItem(ctx context.Context, mode models.Mode, session string, req *models.RemoveItemRequest) (*presenter.CartView, error)
	HandleEvent(ctx context.Context, mode models.Mode, session string, req *models.CartEventRequest) (*presenter.CartView, error)
	ClearCart(ctx context.Context, mode models.Mode, session string) (*presenter.CartView, error)
	ConfirmSelection(ctx context.Context, mode models.Mode, session string, modal *selection.Modal) (*presenter.CartView, error)
	Snapshot(ctx context.Context, mode models.Mode, session string) (*cart.Cart, error)
}

type cartService struct {
	repo        repository.CartRepository
	catalog     CatalogService
	presenter   *presenter.Presenter
	maxQuantity int
	locks       *slotLocks
}

func NewCartService(repo repository.CartRepository, catalog CatalogService, p *presenter.Presenter, maxQuantity int) CartService {
	return &cartService{repo: repo, catalog: catalog, presenter: p, maxQuantity: maxQuantity, locks: newSlotLocks()}
}

func (s *cartService) GetCart(ctx context.Context, mode models.Mode, session string) (*presenter.CartView, error) {

	c, err := s.Snapshot(ctx, mode, session)
	if err != nil {
		return nil, err
	}

	view := s.presenter.Render(c)

	return &view, nil
}

func (s *cartService) Snapshot(ctx context.Context, mode models.Mode, session string) (*cart.Cart, error) {

	c, err := s.repo.Load(ctx, repository.CartSlot(mode, session))
	if err != nil {
		return nil, errors.NetworkFailureError(errors.MsgNetworkError).WithError(err)
	}

	return c, nil
}

func (s *cartService) AddItem(ctx context.Context, mode models.Mode, session string, req *models.AddItemRequest) (*presenter.CartView, error) {

	quantity, err := cart.ParseQuantity(req.Quantity)
	if err != nil {
		return nil, err
	}

	view, err := s.withEngine(ctx, mode, session, "add", errors.MsgAddToCartError, func(e *cart.Engine) (*cart.Cart, error) {
		return e.AddItem(ctx, req.ProductID, req.VariantID, quantity)
	})
	if err != nil {
		return nil, err
	}

	view.Notice = noticeAdded

	return view, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, mode models.Mode, session string, req *models.UpdateQuantityRequest) (*presenter.CartView, error) {

	if req.Quantity == nil {
		return nil, errors.InvalidQuantityError("Quantity is required")
	}

	quantity, err := cart.ParseWholeNumber(*req.Quantity)
	if err != nil {
		return nil, err
	}

	key := cart.LineKey{ProductID: req.ProductID, VariantID: req.VariantID}

	return s.withEngine(ctx, mode, session, "set", errors.MsgUpdateError, func(e *cart.Engine) (*cart.Cart, error) {
		return e.SetQuantity(ctx, key, quantity)
	})
}

func (s *cartService) RemoveItem(ctx context.Context, mode models.Mode, session string, req *models.RemoveItemRequest) (*presenter.CartView, error) {

	key := cart.LineKey{ProductID: req.ProductID, VariantID: req.VariantID}

	view, err := s.withEngine(ctx, mode, session, "remove", errors.MsgRemoveError, func(e *cart.Engine) (*cart.Cart, error) {
		return e.RemoveItem(ctx, key)
	})
	if err != nil {
		return nil, err
	}

	view.Notice = noticeRemoved

	return view, nil
}

// HandleEvent runs a drawer control through the presenter's command table.
func (s *cartService) HandleEvent(ctx context.Context, mode models.Mode, session string, req *models.CartEventRequest) (*presenter.CartView, error) {

	cmd := presenter.Command{
		Event: presenter.Event(req.Event),
		Key:   cart.LineKey{ProductID: req.ProductID, VariantID: req.VariantID},
	}

	if cmd.Event == presenter.EventSet {
		if req.Quantity == nil {
			return nil, errors.InvalidQuantityError("Quantity is required")
		}

		quantity, err := cart.ParseWholeNumber(*req.Quantity)
		if err != nil {
			return nil, err
		}
		cmd.Quantity = quantity
	}

	failure := errors.MsgUpdateError
	if cmd.Event == presenter.EventRemove {
		failure = errors.MsgRemoveError
	}

	return s.withEngine(ctx, mode, session, req.Event, failure, func(e *cart.Engine) (*cart.Cart, error) {
		if _, err := s.presenter.Dispatch(ctx, e, cmd); err != nil {
			return nil, err
		}
		return e.Cart(), nil
	})
}

// ClearCart drops the slot so the session starts over with an empty cart.
func (s *cartService) ClearCart(ctx context.Context, mode models.Mode, session string) (*presenter.CartView, error) {

	slot := repository.CartSlot(mode, session)

	unlock := s.locks.lock(slot)
	defer unlock()

	if err := s.repo.Clear(ctx, slot); err != nil {
		metrics.CartMutations.WithLabelValues(string(mode), "clear", "error").Inc()
		return nil, errors.NetworkFailureError(errors.MsgNetworkError).WithError(err)
	}

	metrics.CartMutations.WithLabelValues(string(mode), "clear", "ok").Inc()

	view := s.presenter.Render(cart.New())
	view.Notice = noticeCleared

	return &view, nil
}

// ConfirmSelection adds the modal's resolved variant while holding the slot lock.
func (s *cartService) ConfirmSelection(ctx context.Context, mode models.Mode, session string, modal *selection.Modal) (*presenter.CartView, error) {

	view, err := s.withEngine(ctx, mode, session, "add", errors.MsgAddToCartError, func(e *cart.Engine) (*cart.Cart, error) {
		return modal.Confirm(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	view.Notice = noticeAdded

	return view, nil
}

// withEngine serialises access to one cart slot, hydrates an engine from the
// store and renders the cart fn leaves behind.
func (s *cartService) withEngine(ctx context.Context, mode models.Mode, session, op, failure string, fn func(*cart.Engine) (*cart.Cart, error)) (*presenter.CartView, error) {

	slot := repository.CartSlot(mode, session)

	unlock := s.locks.lock(slot)
	defer unlock()

	current, err := s.repo.Load(ctx, slot)
	if err != nil {
		metrics.CartMutations.WithLabelValues(string(mode), op, "error").Inc()
		return nil, errors.NetworkFailureError(errors.MsgNetworkError).WithError(err)
	}

	engine := cart.NewEngine(current, s.catalog.Provider(mode), s.repo, slot,
		cart.WithMaxQuantity(s.maxQuantity),
		cart.WithLogger(middleware.LoggerFromContext(ctx)),
	)

	c, err := fn(engine)
	if err != nil {
		metrics.CartMutations.WithLabelValues(string(mode), op, "error").Inc()

		if errors.HasCode(err, errors.ErrCodeNetworkFailure) {
			return nil, errors.NetworkFailureError(failure).WithError(err)
		}
		return nil, err
	}

	metrics.CartMutations.WithLabelValues(string(mode), op, "ok").Inc()

	view := s.presenter.Render(c)

	return &view, nil
}

