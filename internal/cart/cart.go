// Package cart holds the shopping cart and the engine that mutates it.
package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// LineKey identifies a line item; a cart holds at most one line per key.
type LineKey struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
}

func (k LineKey) String() string {
	return k.ProductID + "/" + k.VariantID
}

type LineItem struct {
	ProductID    string          `json:"product_id"`
	VariantID    string          `json:"variant_id"`
	Title        string          `json:"title"`
	VariantTitle string          `json:"variant_title"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Image        string          `json:"image"`
	Quantity     int             `json:"quantity"`
}

func (i LineItem) Key() LineKey {
	return LineKey{ProductID: i.ProductID, VariantID: i.VariantID}
}

func (i LineItem) LinePrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is an ordered list of line items. Insertion order is display order.
type Cart struct {
	lines []LineItem
}

func New() *Cart {
	return &Cart{}
}

// FromLines rebuilds a cart from stored lines. Lines without a key or with a
// non-positive quantity are dropped and repeated keys are merged.
func FromLines(lines []LineItem) *Cart {
	c := New()

	for _, line := range lines {
		if line.ProductID == "" || line.VariantID == "" || line.Quantity < 1 {
			continue
		}

		if idx := c.index(line.Key()); idx >= 0 {
			c.lines[idx].Quantity += line.Quantity
			continue
		}

		c.lines = append(c.lines, line)
	}

	return c
}

// Lines returns a copy of the line items.
func (c *Cart) Lines() []LineItem {
	lines := make([]LineItem, len(c.lines))
	copy(lines, c.lines)

	return lines
}

func (c *Cart) Line(key LineKey) (LineItem, bool) {
	idx := c.index(key)
	if idx < 0 {
		return LineItem{}, false
	}

	return c.lines[idx], true
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Total is the sum of unit price times quantity, rounded half-up to cents.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero

	for _, line := range c.lines {
		total = total.Add(line.LinePrice())
	}

	return total.Round(2)
}

func (c *Cart) ItemCount() int {
	count := 0

	for _, line := range c.lines {
		count += line.Quantity
	}

	return count
}

func (c *Cart) Clone() *Cart {
	return &Cart{lines: c.Lines()}
}

func (c *Cart) MarshalJSON() ([]byte, error) {
	if c.lines == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(c.lines)
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []LineItem

	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}

	*c = *FromLines(lines)

	return nil
}

func (c *Cart) index(key LineKey) int {
	for i, line := range c.lines {
		if line.Key() == key {
			return i
		}
	}

	return -1
}

func (c *Cart) append(line LineItem) {
	c.lines = append(c.lines, line)
}

func (c *Cart) setQuantity(idx, quantity int) {
	c.lines[idx].Quantity = quantity
}

func (c *Cart) remove(idx int) {
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
}
