package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Badge string

const (
	BadgeNone    Badge = ""
	BadgeNew     Badge = "new"
	BadgeSale    Badge = "sale"
	BadgeSoldOut Badge = "soldout"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// DefaultVariantTitle is the title storefronts give the only variant of a product without options.
const DefaultVariantTitle = "Default Title"

type Option struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type Variant struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Available      bool              `json:"available"`
	Options        map[string]string `json:"options,omitempty"`
	Price          *decimal.Decimal  `json:"price,omitempty"`
	CompareAtPrice *decimal.Decimal  `json:"compare_at_price,omitempty"`
}

type Product struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
	Image          string           `json:"image"`
	Description    string           `json:"description"`
	Category       string           `json:"category"`
	Variants       []Variant        `json:"variants"`
	Options        []Option         `json:"options,omitempty"`
	Badge          Badge            `json:"badge,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

func (p *Product) Variant(id string) (*Variant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i], true
		}
	}

	return nil, false
}

func (p *Product) FirstVariant() *Variant {
	if len(p.Variants) == 0 {
		return nil
	}

	return &p.Variants[0]
}

// FirstAvailableVariant falls back to the first variant when none is in stock.
func (p *Product) FirstAvailableVariant() *Variant {
	for i := range p.Variants {
		if p.Variants[i].Available {
			return &p.Variants[i]
		}
	}

	return p.FirstVariant()
}

// PriceFor returns the variant override when present, the product price otherwise.
func (p *Product) PriceFor(v *Variant) decimal.Decimal {
	if v != nil && v.Price != nil {
		return *v.Price
	}

	return p.Price
}

func (p *Product) CompareAtPriceFor(v *Variant) *decimal.Decimal {
	if v != nil && v.CompareAtPrice != nil {
		return v.CompareAtPrice
	}

	return p.CompareAtPrice
}

func (p *Product) OnSale() bool {
	first := p.FirstVariant()
	compare := p.CompareAtPriceFor(first)

	return compare != nil && compare.GreaterThan(p.PriceFor(first))
}

type ProductFilter struct {
	Category string `json:"category"`
	Query    string `json:"query"`
	Page     int    `json:"page"`
}

// Matches applies the category and text filters shared by every catalog source.
func (f ProductFilter) Matches(p *Product) bool {
	if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
		return false
	}

	if f.Query == "" {
		return true
	}

	term := strings.ToLower(f.Query)

	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// Apply keeps matching products in their original relative order.
func (f ProductFilter) Apply(products []*Product) []*Product {
	filtered := make([]*Product, 0, len(products))

	for _, p := range products {
		if f.Matches(p) {
			filtered = append(filtered, p)
		}
	}

	return filtered
}
