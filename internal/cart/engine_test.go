package cart_test

import (
	"errors"
	"testing"

	"github.com/emberwake/merch-cart/internal/cart"
	"github.com/emberwake/merch-cart/internal/cart/mocks"
	"github.com/emberwake/merch-cart/internal/catalog"
	appErrors "github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSlot = "cart:demo:session-1"

var (
	shirtM  = cart.LineKey{ProductID: "demo-1", VariantID: "v1-m"}
	hoodieL = cart.LineKey{ProductID: "demo-2", VariantID: "v2-l"}
)

func newTestEngine(t *testing.T, opts ...cart.Option) (*cart.Engine, *mocks.Store) {
	t.Helper()

	store := new(mocks.Store)
	store.On("Save", mock.Anything, testSlot, mock.AnythingOfType("*cart.Cart")).Return(nil)

	lookup := catalog.NewStaticProvider(catalog.DemoProducts())

	return cart.NewEngine(cart.New(), lookup, store, testSlot, opts...), store
}

func TestAddItem(t *testing.T) {
	t.Run("Success - Snapshot Line", func(t *testing.T) {
		// Arrange
		engine, store := newTestEngine(t)

		// Act
		c, err := engine.AddItem(t.Context(), "demo-1", "v1-m", 2)

		// Assert
		require.NoError(t, err)
		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, "Anhedonia Tour T-Shirt", lines[0].Title)
		assert.Equal(t, "Medium", lines[0].VariantTitle)
		assert.True(t, decimal.NewFromInt(25).Equal(lines[0].UnitPrice))
		assert.Equal(t, 2, lines[0].Quantity)
		store.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("Success - Repeated Adds Merge And Clamp", func(t *testing.T) {
		// Arrange
		engine, _ := newTestEngine(t)

		// Act
		_, err := engine.AddItem(t.Context(), "demo-1", "v1-m", 4)
		require.NoError(t, err)
		_, err = engine.AddItem(t.Context(), "demo-1", "v1-m", 5)
		require.NoError(t, err)
		c, err := engine.AddItem(t.Context(), "demo-1", "v1-m", 3)

		// Assert
		require.NoError(t, err)
		require.Equal(t, 1, c.Len())
		got, _ := c.Line(shirtM)
		assert.Equal(t, 10, got.Quantity)
	})

	t.Run("Success - Insertion Order", func(t *testing.T) {
		engine, _ := newTestEngine(t)

		_, _ = engine.AddItem(t.Context(), "demo-2", "v2-l", 1)
		_, _ = engine.AddItem(t.Context(), "demo-1", "v1-m", 1)
		c, _ := engine.AddItem(t.Context(), "demo-2", "v2-l", 1)

		lines := c.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, hoodieL, lines[0].Key())
		assert.Equal(t, shirtM, lines[1].Key())
	})

	t.Run("Success - Configured Ceiling", func(t *testing.T) {
		engine, _ := newTestEngine(t, cart.WithMaxQuantity(3))

		_, _ = engine.AddItem(t.Context(), "demo-1", "v1-m", 2)
		c, err := engine.AddItem(t.Context(), "demo-1", "v1-m", 2)

		require.NoError(t, err)
		got, _ := c.Line(shirtM)
		assert.Equal(t, 3, got.Quantity)
		assert.Equal(t, 3, engine.MaxQuantity())
	})

	t.Run("No-op - Unknown Product", func(t *testing.T) {
		// Arrange
		engine, store := newTestEngine(t)

		// Act
		c, err := engine.AddItem(t.Context(), "demo-99", "v1", 1)

		// Assert
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
		store.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("No-op - Unknown Variant", func(t *testing.T) {
		engine, _ := newTestEngine(t)

		c, err := engine.AddItem(t.Context(), "demo-1", "v9-x", 1)

		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
	})

	t.Run("Failure - Unavailable Variant", func(t *testing.T) {
		// Arrange
		engine, store := newTestEngine(t)

		// Act
		c, err := engine.AddItem(t.Context(), "demo-1", "v1-xxl", 1)

		// Assert
		assert.Nil(t, c)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUnavailable, appErr.Code)
		assert.Equal(t, appErrors.MsgOutOfStock, appErr.Message)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Merge Into Sold Out Variant", func(t *testing.T) {
		// Arrange
		lookup := new(mocks.ProductLookup)
		store := new(mocks.Store)
		soldOut := &models.Product{
			ID:       "demo-1",
			Title:    "Anhedonia Tour T-Shirt",
			Price:    decimal.NewFromInt(25),
			Variants: []models.Variant{{ID: "v1-m", Title: "Medium", Available: false}},
		}
		lookup.On("GetProduct", mock.Anything, "demo-1").Return(soldOut, nil).Once()
		existing := cart.FromLines([]cart.LineItem{line("demo-1", "v1-m", "25.00", 2)})
		engine := cart.NewEngine(existing, lookup, store, testSlot)

		// Act
		c, err := engine.AddItem(t.Context(), "demo-1", "v1-m", 1)

		// Assert
		assert.Nil(t, c)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeUnavailable))
		got, _ := engine.Cart().Line(shirtM)
		assert.Equal(t, 2, got.Quantity)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		lookup.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Quantity", func(t *testing.T) {
		engine, store := newTestEngine(t)

		for _, q := range []int{0, -1, 11} {
			c, err := engine.AddItem(t.Context(), "demo-1", "v1-m", q)

			assert.Nil(t, c)
			assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeInvalidQuantity), "quantity %d", q)
		}
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Lookup Error", func(t *testing.T) {
		// Arrange
		lookup := new(mocks.ProductLookup)
		store := new(mocks.Store)
		lookupErr := appErrors.NetworkFailureError(appErrors.MsgNetworkError)
		lookup.On("GetProduct", mock.Anything, "demo-1").Return(nil, lookupErr).Once()
		engine := cart.NewEngine(nil, lookup, store, testSlot)

		// Act
		c, err := engine.AddItem(t.Context(), "demo-1", "v1-m", 1)

		// Assert
		assert.Nil(t, c)
		assert.ErrorIs(t, err, lookupErr)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Save Error", func(t *testing.T) {
		// Arrange
		store := new(mocks.Store)
		saveErr := errors.New("redis: connection refused")
		store.On("Save", mock.Anything, testSlot, mock.Anything).Return(saveErr).Once()
		engine := cart.NewEngine(nil, catalog.NewStaticProvider(catalog.DemoProducts()), store, testSlot)

		// Act
		c, err := engine.AddItem(t.Context(), "demo-1", "v1-m", 1)

		// Assert
		assert.Nil(t, c)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeNetworkFailure))
		assert.ErrorIs(t, err, saveErr)
	})
}

func TestNewEngineClampsStoredLines(t *testing.T) {
	// Arrange
	stored := cart.FromLines([]cart.LineItem{
		line("demo-1", "v1-m", "25.00", 8),
		line("demo-2", "v2-l", "45.00", 3),
		line("demo-1", "v1-m", "25.00", 6),
	})

	// Act
	engine := cart.NewEngine(stored, catalog.NewStaticProvider(catalog.DemoProducts()), new(mocks.Store), testSlot)

	// Assert
	shirt, _ := engine.Cart().Line(shirtM)
	hoodie, _ := engine.Cart().Line(hoodieL)
	assert.Equal(t, 10, shirt.Quantity)
	assert.Equal(t, 3, hoodie.Quantity)
	assert.Equal(t, 13, engine.ItemCount())
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantLines int
		wantQty   int
	}{
		{name: "Update", quantity: 4, wantLines: 1, wantQty: 4},
		{name: "Clamps To Ceiling", quantity: 15, wantLines: 1, wantQty: 10},
		{name: "Zero Removes", quantity: 0, wantLines: 0},
		{name: "Negative Removes", quantity: -3, wantLines: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			engine, _ := newTestEngine(t)
			_, err := engine.AddItem(t.Context(), "demo-1", "v1-m", 2)
			require.NoError(t, err)

			// Act
			c, err := engine.SetQuantity(t.Context(), shirtM, tt.quantity)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.wantLines, c.Len())
			if tt.wantLines > 0 {
				got, _ := c.Line(shirtM)
				assert.Equal(t, tt.wantQty, got.Quantity)
			}
		})
	}

	t.Run("Absent Key Adds Nothing", func(t *testing.T) {
		engine, store := newTestEngine(t)

		c, err := engine.SetQuantity(t.Context(), hoodieL, 3)

		require.NoError(t, err)
		assert.True(t, c.IsEmpty())
		store.AssertNumberOfCalls(t, "Save", 1)
	})
}

func TestRemoveItem(t *testing.T) {
	// Arrange
	engine, store := newTestEngine(t)
	_, _ = engine.AddItem(t.Context(), "demo-1", "v1-m", 1)
	_, _ = engine.AddItem(t.Context(), "demo-2", "v2-l", 1)

	// Act
	first, err1 := engine.RemoveItem(t.Context(), shirtM)
	second, err2 := engine.RemoveItem(t.Context(), shirtM)

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first.Lines(), second.Lines())
	require.Len(t, second.Lines(), 1)
	assert.Equal(t, hoodieL, second.Lines()[0].Key())
	store.AssertNumberOfCalls(t, "Save", 4)
}

func TestComputeTotal(t *testing.T) {
	engine, _ := newTestEngine(t)
	_, _ = engine.AddItem(t.Context(), "demo-1", "v1-m", 2)
	_, _ = engine.AddItem(t.Context(), "demo-2", "v2-l", 1)

	assert.Equal(t, "95.00", engine.ComputeTotal().StringFixed(2))
	assert.Equal(t, 3, engine.ItemCount())
}

func TestEngineCartIsACopy(t *testing.T) {
	engine, _ := newTestEngine(t)
	c, _ := engine.AddItem(t.Context(), "demo-1", "v1-m", 1)

	_, _ = engine.SetQuantity(t.Context(), shirtM, 5)

	got, _ := c.Line(shirtM)
	assert.Equal(t, 1, got.Quantity)
	now, _ := engine.Cart().Line(shirtM)
	assert.Equal(t, 5, now.Quantity)
}

func ptr(f float64) *float64 { return &f }

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name    string
		raw     *float64
		want    int
		wantErr bool
	}{
		{name: "Missing Defaults To One", raw: nil, want: 1},
		{name: "Whole Number", raw: ptr(3), want: 3},
		{name: "Fraction", raw: ptr(2.5), wantErr: true},
		{name: "Zero", raw: ptr(0), wantErr: true},
		{name: "Negative", raw: ptr(-2), wantErr: true},
		{name: "Too Large", raw: ptr(1e12), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cart.ParseQuantity(tt.raw)

			if tt.wantErr {
				assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeInvalidQuantity))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWholeNumber(t *testing.T) {
	got, err := cart.ParseWholeNumber(0)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = cart.ParseWholeNumber(-4)
	require.NoError(t, err)
	assert.Equal(t, -4, got)

	_, err = cart.ParseWholeNumber(1.01)
	assert.Error(t, err)
}
