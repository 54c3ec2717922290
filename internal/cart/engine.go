package cart

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	appErrors "github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultMaxQuantity is the per-line ceiling used when no policy is given.
const DefaultMaxQuantity = 10

// ProductLookup resolves catalog products for line snapshots.
type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

// Store persists a whole cart under a slot key.
type Store interface {
	Load(ctx context.Context, slot string) (*Cart, error)
	Save(ctx context.Context, slot string, cart *Cart) error
}

type Option func(*Engine)

func WithMaxQuantity(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxQuantity = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine owns one cart and writes it through to its store after every mutation.
type Engine struct {
	cart        *Cart
	lookup      ProductLookup
	store       Store
	slot        string
	maxQuantity int
	logger      *slog.Logger
}

func NewEngine(cart *Cart, lookup ProductLookup, store Store, slot string, opts ...Option) *Engine {
	if cart == nil {
		cart = New()
	}

	e := &Engine{
		cart:        cart,
		lookup:      lookup,
		store:       store,
		slot:        slot,
		maxQuantity: DefaultMaxQuantity,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	// stored carts may predate the current ceiling or carry merged duplicates
	for i, line := range e.cart.lines {
		if line.Quantity > e.maxQuantity {
			e.cart.setQuantity(i, e.maxQuantity)
		}
	}

	return e
}

func (e *Engine) MaxQuantity() int {
	return e.maxQuantity
}

// Cart returns a copy of the current cart.
func (e *Engine) Cart() *Cart {
	return e.cart.Clone()
}

func (e *Engine) AddItem(ctx context.Context, productID, variantID string, quantity int) (*Cart, error) {

	if quantity < 1 || quantity > e.maxQuantity {
		return nil, appErrors.InvalidQuantityError(fmt.Sprintf("Quantity must be between 1 and %d", e.maxQuantity))
	}

	product, err := e.lookup.GetProduct(ctx, productID)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrCodeNotFound) {
			e.logger.Warn("Add to cart ignored, product not found", slog.String("product_id", productID))
			return e.persist(ctx)
		}
		return nil, err
	}

	variant, ok := product.Variant(variantID)
	if !ok {
		e.logger.Warn("Add to cart ignored, variant not found", slog.String("product_id", productID), slog.String("variant_id", variantID))
		return e.persist(ctx)
	}

	// checked on merges too, a variant can sell out after its first add
	if !variant.Available {
		return nil, appErrors.UnavailableError(appErrors.MsgOutOfStock)
	}

	if idx := e.cart.index(LineKey{ProductID: productID, VariantID: variantID}); idx >= 0 {
		e.cart.setQuantity(idx, e.clamp(e.cart.lines[idx].Quantity+quantity))
		return e.persist(ctx)
	}

	e.cart.append(LineItem{
		ProductID:    product.ID,
		VariantID:    variant.ID,
		Title:        product.Title,
		VariantTitle: variant.Title,
		UnitPrice:    product.PriceFor(variant),
		Image:        product.Image,
		Quantity:     quantity,
	})

	return e.persist(ctx)
}

// SetQuantity removes the line below 1 and clamps above the ceiling. Unknown keys are ignored.
func (e *Engine) SetQuantity(ctx context.Context, key LineKey, quantity int) (*Cart, error) {

	if idx := e.cart.index(key); idx >= 0 {
		if quantity < 1 {
			e.cart.remove(idx)
		} else {
			e.cart.setQuantity(idx, e.clamp(quantity))
		}
	}

	return e.persist(ctx)
}

func (e *Engine) RemoveItem(ctx context.Context, key LineKey) (*Cart, error) {

	if idx := e.cart.index(key); idx >= 0 {
		e.cart.remove(idx)
	}

	return e.persist(ctx)
}

func (e *Engine) ComputeTotal() decimal.Decimal {
	return e.cart.Total()
}

func (e *Engine) ItemCount() int {
	return e.cart.ItemCount()
}

func (e *Engine) persist(ctx context.Context) (*Cart, error) {

	if err := e.store.Save(ctx, e.slot, e.cart); err != nil {
		return nil, appErrors.NetworkFailureError("Failed to save cart").WithError(err)
	}

	return e.cart.Clone(), nil
}

func (e *Engine) clamp(quantity int) int {
	return max(1, min(quantity, e.maxQuantity))
}

// ParseQuantity converts a decoded JSON quantity. A missing value means 1;
// fractional or non-positive values are rejected rather than coerced.
func ParseQuantity(raw *float64) (int, error) {
	if raw == nil {
		return 1, nil
	}

	q, err := ParseWholeNumber(*raw)
	if err != nil {
		return 0, err
	}

	if q < 1 {
		return 0, appErrors.InvalidQuantityError("Quantity must be at least 1")
	}

	return q, nil
}

// ParseWholeNumber accepts any integral value, including zero and negatives.
func ParseWholeNumber(q float64) (int, error) {

	if math.IsNaN(q) || math.IsInf(q, 0) || q != math.Trunc(q) {
		return 0, appErrors.InvalidQuantityError("Quantity must be a whole number")
	}

	if q > math.MaxInt32 || q < math.MinInt32 {
		return 0, appErrors.InvalidQuantityError("Quantity is out of range")
	}

	return int(q), nil
}
