// Package presenter turns a cart into the drawer view and maps drawer
// controls onto cart engine calls.
package presenter

import (
	"context"
	"fmt"

	"github.com/emberwake/merch-cart/internal/cart"
	appErrors "github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/models"
	"github.com/shopspring/decimal"
)

type LineView struct {
	ProductID    string `json:"product_id"`
	VariantID    string `json:"variant_id"`
	Title        string `json:"title"`
	VariantLabel string `json:"variant_label,omitempty"`
	Image        string `json:"image"`
	Quantity     int    `json:"quantity"`
	UnitPrice    string `json:"unit_price"`
	LinePrice    string `json:"line_price"`
	CanIncrease  bool   `json:"can_increase"`
	CanDecrease  bool   `json:"can_decrease"`
}

type CartView struct {
	Lines     []LineView `json:"lines"`
	Total     string     `json:"total"`
	ItemCount int        `json:"item_count"`
	Empty     bool       `json:"empty"`
	Notice    string     `json:"notice,omitempty"`
}

type Presenter struct {
	currency    string
	maxQuantity int
}

func New(currencySymbol string, maxQuantity int) *Presenter {
	if maxQuantity < 1 {
		maxQuantity = cart.DefaultMaxQuantity
	}

	return &Presenter{currency: currencySymbol, maxQuantity: maxQuantity}
}

func (p *Presenter) FormatPrice(d decimal.Decimal) string {
	return p.currency + d.StringFixed(2)
}

func (p *Presenter) Render(c *cart.Cart) CartView {
	if c == nil {
		c = cart.New()
	}

	view := CartView{
		Lines:     make([]LineView, 0, c.Len()),
		Total:     p.FormatPrice(c.Total()),
		ItemCount: c.ItemCount(),
		Empty:     c.IsEmpty(),
	}

	for _, line := range c.Lines() {
		label := line.VariantTitle
		if label == models.DefaultVariantTitle {
			label = ""
		}

		view.Lines = append(view.Lines, LineView{
			ProductID:    line.ProductID,
			VariantID:    line.VariantID,
			Title:        line.Title,
			VariantLabel: label,
			Image:        line.Image,
			Quantity:     line.Quantity,
			UnitPrice:    p.FormatPrice(line.UnitPrice),
			LinePrice:    p.FormatPrice(line.LinePrice()),
			CanIncrease:  line.Quantity < p.maxQuantity,
			CanDecrease:  true,
		})
	}

	return view
}

type Event string

const (
	EventIncrease Event = "increase"
	EventDecrease Event = "decrease"
	EventRemove   Event = "remove"
	EventSet      Event = "set"
)

// Command is one drawer control activation.
type Command struct {
	Event    Event
	Key      cart.LineKey
	Quantity int
}

// Mutator is the part of the cart engine the drawer drives.
type Mutator interface {
	Cart() *cart.Cart
	SetQuantity(ctx context.Context, key cart.LineKey, quantity int) (*cart.Cart, error)
	RemoveItem(ctx context.Context, key cart.LineKey) (*cart.Cart, error)
}

type handler func(ctx context.Context, m Mutator, cmd Command) (*cart.Cart, error)

var commands = map[Event]handler{
	EventIncrease: func(ctx context.Context, m Mutator, cmd Command) (*cart.Cart, error) {
		return m.SetQuantity(ctx, cmd.Key, currentQuantity(m, cmd.Key)+1)
	},
	EventDecrease: func(ctx context.Context, m Mutator, cmd Command) (*cart.Cart, error) {
		return m.SetQuantity(ctx, cmd.Key, currentQuantity(m, cmd.Key)-1)
	},
	EventRemove: func(ctx context.Context, m Mutator, cmd Command) (*cart.Cart, error) {
		return m.RemoveItem(ctx, cmd.Key)
	},
	EventSet: func(ctx context.Context, m Mutator, cmd Command) (*cart.Cart, error) {
		return m.SetQuantity(ctx, cmd.Key, cmd.Quantity)
	},
}

// Dispatch runs the command and re-renders the whole cart.
func (p *Presenter) Dispatch(ctx context.Context, m Mutator, cmd Command) (CartView, error) {
	h, ok := commands[cmd.Event]
	if !ok {
		return CartView{}, appErrors.BadRequestError(fmt.Sprintf("Unknown cart event %q", cmd.Event))
	}

	c, err := h(ctx, m, cmd)
	if err != nil {
		return CartView{}, err
	}

	return p.Render(c), nil
}

// currentQuantity is 0 for absent lines, which SetQuantity then ignores.
func currentQuantity(m Mutator, key cart.LineKey) int {
	line, ok := m.Cart().Line(key)
	if !ok {
		return 0
	}

	return line.Quantity
}
