// Package selection models the quick-add dialog where a shopper picks one
// value per product option before the item goes into the cart.
package selection

import (
	"context"
	"fmt"
	"slices"

	"github.com/emberwake/merch-cart/internal/cart"
	appErrors "github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/models"
	"github.com/shopspring/decimal"
)

type State string

const (
	StateClosed    State = "closed"
	StateOpen      State = "open"
	StateSubmitted State = "submitted"
	StateCancelled State = "cancelled"
)

// Adder is the cart operation a confirmed selection performs.
type Adder interface {
	AddItem(ctx context.Context, productID, variantID string, quantity int) (*cart.Cart, error)
}

// Resolution describes what the current choices point at.
type Resolution struct {
	Variant        *models.Variant  `json:"variant,omitempty"`
	Complete       bool             `json:"complete"`
	Available      bool             `json:"available"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
	Message        string           `json:"message,omitempty"`
}

type Modal struct {
	state       State
	product     *models.Product
	selected    map[string]string
	quantity    int
	maxQuantity int
}

func NewModal(maxQuantity int) *Modal {
	if maxQuantity < 1 {
		maxQuantity = cart.DefaultMaxQuantity
	}

	return &Modal{state: StateClosed, maxQuantity: maxQuantity}
}

func (m *Modal) State() State {
	return m.state
}

func (m *Modal) Product() *models.Product {
	return m.product
}

func (m *Modal) Quantity() int {
	return m.quantity
}

// Selected returns a copy of the chosen option values.
func (m *Modal) Selected() map[string]string {
	selected := make(map[string]string, len(m.selected))
	for k, v := range m.selected {
		selected[k] = v
	}

	return selected
}

// Open shows product with the options of its first in-stock variant preselected.
func (m *Modal) Open(product *models.Product) error {
	if product == nil {
		return appErrors.BadRequestError("Product is required")
	}

	m.product = product
	m.selected = make(map[string]string, len(product.Options))
	m.quantity = 1
	m.state = StateOpen

	if v := product.FirstAvailableVariant(); v != nil {
		for _, opt := range product.Options {
			if value, ok := v.Options[opt.Name]; ok && slices.Contains(opt.Values, value) {
				m.selected[opt.Name] = value
			}
		}
	}

	return nil
}

func (m *Modal) Select(dimension, value string) error {
	if m.state != StateOpen {
		return appErrors.BadRequestError("Selection is not open")
	}

	for _, opt := range m.product.Options {
		if opt.Name != dimension {
			continue
		}

		if slices.Contains(opt.Values, value) {
			m.selected[dimension] = value
			return nil
		}

		return appErrors.ValidationError(fmt.Sprintf("%q is not a valid %s", value, dimension))
	}

	return appErrors.ValidationError(fmt.Sprintf("Unknown option %q", dimension))
}

// SetQuantity moves the stepper, clamped to [1, max].
func (m *Modal) SetQuantity(n int) {
	m.quantity = max(1, min(n, m.maxQuantity))
}

func (m *Modal) Resolution() Resolution {
	if m.product == nil {
		return Resolution{Message: appErrors.MsgInvalidVariant}
	}

	res := Resolution{Complete: len(m.selected) == len(m.product.Options)}
	res.Variant = m.match()

	res.Price = m.product.PriceFor(res.Variant)
	res.CompareAtPrice = m.product.CompareAtPriceFor(res.Variant)

	switch {
	case !res.Complete || res.Variant == nil:
		res.Message = appErrors.MsgInvalidVariant
	case !res.Variant.Available:
		res.Message = appErrors.MsgOutOfStock
	default:
		res.Available = true
	}

	return res
}

// CanConfirm holds only when the choices resolve to one in-stock variant.
func (m *Modal) CanConfirm() bool {
	return m.state == StateOpen && m.Resolution().Available
}

// Confirm adds the resolved variant to the cart. When confirming is not
// allowed the adder is never called.
func (m *Modal) Confirm(ctx context.Context, adder Adder) (*cart.Cart, error) {
	if m.state != StateOpen {
		return nil, appErrors.BadRequestError("Selection is not open")
	}

	res := m.Resolution()
	if !res.Available {
		if res.Variant != nil && res.Complete {
			return nil, appErrors.UnavailableError(res.Message)
		}
		return nil, appErrors.ValidationError(res.Message)
	}

	c, err := adder.AddItem(ctx, m.product.ID, res.Variant.ID, m.quantity)
	if err != nil {
		return nil, err
	}

	m.state = StateSubmitted

	return c, nil
}

func (m *Modal) Cancel() {
	m.state = StateCancelled
}

func (m *Modal) match() *models.Variant {
	if len(m.selected) != len(m.product.Options) {
		return nil
	}

	for i := range m.product.Variants {
		v := &m.product.Variants[i]

		matches := true
		for name, value := range m.selected {
			if v.Options[name] != value {
				matches = false
				break
			}
		}

		if matches {
			return v
		}
	}

	return nil
}
