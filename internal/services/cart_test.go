package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/emberwake/merch-cart/internal/cart"
	"github.com/emberwake/merch-cart/internal/catalog"
	appErrors "github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/models"
	"github.com/emberwake/merch-cart/internal/presenter"
	"github.com/emberwake/merch-cart/internal/repositories/mocks"
	service "github.com/emberwake/merch-cart/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const demoSlot = "cart:demo:s1"

func qty(f float64) *float64 { return &f }

func newCartService(repo *mocks.CartRepository) service.CartService {
	catalogService := service.NewCatalogService(catalog.NewStaticProvider(catalog.DemoProducts()), nil, catalog.NewFeedRegistry(time.Minute))

	return service.NewCartService(repo, catalogService, presenter.New("$", 10), 10)
}

func hoodieCart() *cart.Cart {
	return cart.FromLines([]cart.LineItem{
		{ProductID: "demo-2", VariantID: "v2-l", Title: "Emberwake Logo Hoodie", VariantTitle: "Large", UnitPrice: decimal.NewFromInt(45), Quantity: 1},
	})
}

func TestGetCart(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo := new(mocks.CartRepository)
		repo.On("Load", mock.Anything, demoSlot).Return(hoodieCart(), nil).Once()

		// Act
		view, err := newCartService(repo).GetCart(t.Context(), models.ModeDemo, "s1")

		// Assert
		require.NoError(t, err)
		require.Len(t, view.Lines, 1)
		assert.Equal(t, "$45.00", view.Total)
		repo.AssertExpectations(t)
	})

	t.Run("Failure - Store Error", func(t *testing.T) {
		repo := new(mocks.CartRepository)
		repo.On("Load", mock.Anything, "cart:live:s1").Return(nil, errors.New("timeout")).Once()

		view, err := newCartService(repo).GetCart(t.Context(), models.ModeLive, "s1")

		assert.Nil(t, view)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNetworkFailure))
	})
}

func TestCartServiceAddItem(t *testing.T) {
	t.Run("Success - Appends And Persists", func(t *testing.T) {
		// Arrange
		repo := new(mocks.CartRepository)
		repo.On("Load", mock.Anything, demoSlot).Return(hoodieCart(), nil).Once()
		repo.On("Save", mock.Anything, demoSlot, mock.MatchedBy(func(c *cart.Cart) bool { return c.Len() == 2 })).Return(nil).Once()

		// Act
		view, err := newCartService(repo).AddItem(t.Context(), models.ModeDemo, "s1", &models.AddItemRequest{
			ProductID: "demo-1", VariantID: "v1-m", Quantity: qty(2),
		})

		// Assert
		require.NoError(t, err)
		require.Len(t, view.Lines, 2)
		assert.Equal(t, "demo-1", view.Lines[1].ProductID)
		assert.Equal(t, "$95.00", view.Total)
		assert.Equal(t, "Product added to cart!", view.Notice)
		repo.AssertExpectations(t)
	})

	t.Run("Success - Missing Quantity Means One", func(t *testing.T) {
		repo := new(mocks.CartRepository)
		repo.On("Load", mock.Anything, demoSlot).Return(cart.New(), nil).Once()
		repo.On("Save", mock.Anything, demoSlot, mock.Anything).Return(nil).Once()

		view, err := newCartService(repo).AddItem(t.Context(), models.ModeDemo, "s1", &models.AddItemRequest{ProductID: "demo-4", VariantID: "v4-one"})

		require.NoError(t, err)
		assert.Equal(t, 1, view.ItemCount)
	})

	t.Run("Failure - Fractional Quantity", func(t *testing.T) {
		repo := new(mocks.CartRepository)

		_, err := newCartService(repo).AddItem(t.Context(), models.ModeDemo, "s1", &models.AddItemRequest{
			ProductID: "demo-1", VariantID: "v1-m", Quantity: qty(1.5),
		})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeInvalidQuantity))
		repo.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Save Error Uses Add Message", func(t *testing.T) {
		// Arrange
		repo := new(mocks.CartRepository)
		saveErr := errors.New("redis: connection refused")
		repo.On("Load", mock.Anything, demoSlot).Return(cart.New(), nil).Once()
		repo.On("Save", mock.Anything, demoSlot, mock.Anything).Return(saveErr).Once()

		// Act
		view, err := newCartService(repo).AddItem(t.Context(), models.ModeDemo, "s1", &models.AddItemRequest{ProductID: "demo-2", VariantID: "v2-s"})

		// Assert
		assert.Nil(t, view)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNetworkFailure, appErr.Code)
		assert.Equal(t, appErrors.MsgAddToCartError, appErr.Message)
		assert.ErrorIs(t, err, saveErr)
	})

	t.Run("Failure - Out Of Stock", func(t *testing.T) {
		repo := new(mocks.CartRepository)
		repo.On("Load", mock.Anything, demoSlot).Return(cart.New(), nil).Once()

		_, err := newCartService(repo).AddItem(t.Context(), models.ModeDemo, "s1", &models.AddItemRequest{ProductID: "demo-5", VariantID: "v5-deluxe"})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUnavailable))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCartServiceUpdateAndRemove(t *testing.T) {
	t.Run("Update Clamps", func(t *testing.T) {
		repo := new(mocks.CartRepository)
		repo.On("Load", mock.Anything, demoSlot).Return(hoodieCart(), nil).Once()
		repo.On("Save", mock.Anything, demoSlot, mock.Anything).Return(nil).Once()

		view, err := newCartService(repo).UpdateQuantity(t.Context(), models.ModeDemo, "s1", &models.UpdateQuantityRequest{
			ProductID: "demo-2", VariantID: "v2-l", Quantity: qty(15),
		})

		require.NoError(t, err)
		assert.Equal(t, 10, view.Lines[0].Quantity)
	})

	t.Run("Update Zero Removes", func(t *testing.T) {
		repo := new(mocks.CartRepository)
		repo.On("Load", mock.Anything, demoSlot).Return(hoodieCart(), nil).Once()
		repo.On("Save", mock.Anything, demoSlot, mock.Anything).Return(nil).Once()

		view, err := newCartService(repo).UpdateQuantity(t.Context(), models.ModeDemo, "s1", &models.UpdateQuantityRequest{
			ProductID: "demo-2", VariantID: "v2-l", Quantity: qty(0),
		})

		require.NoError(t, err)
		assert.True(t, view.Empty)
	})

	t.Run("Update Requires Quantity", func(t *testing.T) {
		_, err := newCartService(new(mocks.CartRepository)).UpdateQuantity(t.Context(), models.ModeDemo, "s1", &models.UpdateQuantityRequest{
			ProductID: "demo-2", VariantID: "v2-l",
		})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeInvalidQuantity))
	})

	t.Run("Remove Save Error Uses Remove Message", func(t *testing.T) {
		repo := new(mocks.CartRepository)
		repo.On("Load", mock.Anything, demoSlot).Return(hoodieCart(), nil).Once()
		repo.On("Save", mock.Anything, demoSlot, mock.Anything).Return(errors.New("boom")).Once()

		_, err := newCartService(repo).RemoveItem(t.Context(), models.ModeDemo, "s1", &models.RemoveItemRequest{ProductID: "demo-2", VariantID: "v2-l"})

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.MsgRemoveError, appErr.Message)
	})

	t.Run("Remove", func(t *testing.T) {
		repo := new(mocks.CartRepository)
		repo.On("Load", mock.Anything, demoSlot).Return(hoodieCart(), nil).Once()
		repo.On("Save", mock.Anything, demoSlot, mock.Anything).Return(nil).Once()

		view, err := newCartService(repo).RemoveItem(t.Context(), models.ModeDemo, "s1", &models.RemoveItemRequest{ProductID: "demo-2", VariantID: "v2-l"})

		require.NoError(t, err)
		assert.True(t, view.Empty)
		assert.Equal(t, "Item removed from cart", view.Notice)
	})
}

func TestCartServiceClearCart(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo := new(mocks.CartRepository)
		repo.On("Clear", mock.Anything, "cart:live:s1").Return(nil).Once()

		// Act
		view, err := newCartService(repo).ClearCart(t.Context(), models.ModeLive, "s1")

		// Assert
		require.NoError(t, err)
		assert.True(t, view.Empty)
		assert.Equal(t, "$0.00", view.Total)
		assert.Equal(t, "Started a new cart", view.Notice)
		repo.AssertExpectations(t)
	})

	t.Run("Failure - Store Error", func(t *testing.T) {
		repo := new(mocks.CartRepository)
		repo.On("Clear", mock.Anything, demoSlot).Return(errors.New("redis: connection refused")).Once()

		view, err := newCartService(repo).ClearCart(t.Context(), models.ModeDemo, "s1")

		assert.Nil(t, view)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNetworkFailure))
	})
}

func TestHandleEvent(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CartEventRequest
		wantQty int
		empty   bool
	}{
		{name: "Increase", req: models.CartEventRequest{Event: "increase"}, wantQty: 2},
		{name: "Decrease To Zero Removes", req: models.CartEventRequest{Event: "decrease"}, empty: true},
		{name: "Remove", req: models.CartEventRequest{Event: "remove"}, empty: true},
		{name: "Set", req: models.CartEventRequest{Event: "set", Quantity: qty(4)}, wantQty: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			repo := new(mocks.CartRepository)
			repo.On("Load", mock.Anything, demoSlot).Return(hoodieCart(), nil).Once()
			repo.On("Save", mock.Anything, demoSlot, mock.Anything).Return(nil).Once()
			req := tt.req
			req.ProductID, req.VariantID = "demo-2", "v2-l"

			// Act
			view, err := newCartService(repo).HandleEvent(t.Context(), models.ModeDemo, "s1", &req)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.empty, view.Empty)
			if !tt.empty {
				assert.Equal(t, tt.wantQty, view.Lines[0].Quantity)
			}
			repo.AssertExpectations(t)
		})
	}

	t.Run("Set Without Quantity", func(t *testing.T) {
		_, err := newCartService(new(mocks.CartRepository)).HandleEvent(t.Context(), models.ModeDemo, "s1",
			&models.CartEventRequest{Event: "set", ProductID: "demo-2", VariantID: "v2-l"})

		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeInvalidQuantity))
	})
}

// memoryCarts is a CartRepository that keeps one cart per slot in memory.
type memoryCarts struct {
	mu    sync.Mutex
	carts map[string]*cart.Cart
	saves int
}

func (m *memoryCarts) Load(_ context.Context, slot string) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.carts[slot]; ok {
		return c.Clone(), nil
	}
	return cart.New(), nil
}

func (m *memoryCarts) Save(_ context.Context, slot string, c *cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.carts[slot] = c.Clone()
	m.saves++
	return nil
}

func (m *memoryCarts) Clear(_ context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.carts, slot)
	return nil
}

func TestCartServiceSerialisesSlot(t *testing.T) {
	// Arrange
	repo := &memoryCarts{carts: map[string]*cart.Cart{}}
	catalogService := service.NewCatalogService(catalog.NewStaticProvider(catalog.DemoProducts()), nil, catalog.NewFeedRegistry(time.Minute))
	cartService := service.NewCartService(repo, catalogService, presenter.New("$", 10), 10)

	// Act
	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = cartService.AddItem(t.Context(), models.ModeDemo, "s1", &models.AddItemRequest{ProductID: "demo-4", VariantID: "v4-one"})
		}()
	}
	wg.Wait()

	// Assert
	got, err := repo.Load(t.Context(), demoSlot)
	require.NoError(t, err)
	line, ok := got.Line(cart.LineKey{ProductID: "demo-4", VariantID: "v4-one"})
	require.True(t, ok)
	assert.Equal(t, 5, line.Quantity)
	assert.Equal(t, 5, repo.saves)
}
