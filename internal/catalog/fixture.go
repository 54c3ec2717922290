package catalog

import (
	"github.com/emberwake/merch-cart/internal/models"
	"github.com/shopspring/decimal"
)

const placeholderImage = "https://via.placeholder.com/400x400/1a1a1a/ff6b35?text="

// DemoProducts returns the offline merch catalog used in demo mode.
func DemoProducts() []*models.Product {
	return []*models.Product{
		{
			ID:             "demo-1",
			Title:          "Anhedonia Tour T-Shirt",
			Price:          decimal.NewFromInt(25),
			CompareAtPrice: price(35),
			Image:          placeholderImage + "Tour+Shirt",
			Category:       "apparel",
			Description:    "Limited edition tour shirt featuring exclusive Anhedonia artwork.",
			Options:        []models.Option{{Name: "Size", Values: []string{"Small", "Medium", "Large", "XL", "XXL"}}},
			Variants: []models.Variant{
				variant("v1-s", "Size", "Small", true),
				variant("v1-m", "Size", "Medium", true),
				variant("v1-l", "Size", "Large", true),
				variant("v1-xl", "Size", "XL", true),
				variant("v1-xxl", "Size", "XXL", false),
			},
			Badge: models.BadgeSale,
		},
		{
			ID:          "demo-2",
			Title:       "Emberwake Logo Hoodie",
			Price:       decimal.NewFromInt(45),
			Image:       placeholderImage + "Logo+Hoodie",
			Category:    "apparel",
			Description: "Premium quality hoodie with embroidered Emberwake logo.",
			Options:     []models.Option{{Name: "Size", Values: []string{"Small", "Medium", "Large", "XL"}}},
			Variants: []models.Variant{
				variant("v2-s", "Size", "Small", true),
				variant("v2-m", "Size", "Medium", true),
				variant("v2-l", "Size", "Large", true),
				variant("v2-xl", "Size", "XL", true),
			},
			Badge: models.BadgeNew,
		},
		{
			ID:          "demo-3",
			Title:       "Anhedonia Vinyl LP",
			Price:       decimal.NewFromInt(30),
			Image:       placeholderImage + "Vinyl+LP",
			Category:    "music",
			Description: "Limited edition colored vinyl pressing of Anhedonia.",
			Options:     []models.Option{{Name: "Color", Values: []string{"Black Vinyl", "Red Marble (Limited)", "Clear (Sold Out)"}}},
			Variants: []models.Variant{
				variant("v3-black", "Color", "Black Vinyl", true),
				variant("v3-red", "Color", "Red Marble (Limited)", true),
				variant("v3-clear", "Color", "Clear (Sold Out)", false),
			},
		},
		{
			ID:          "demo-4",
			Title:       "Band Logo Snapback",
			Price:       decimal.NewFromInt(20),
			Image:       placeholderImage + "Snapback",
			Category:    "accessories",
			Description: "Adjustable snapback with embroidered logo.",
			Options:     []models.Option{{Name: "Size", Values: []string{"One Size"}}},
			Variants: []models.Variant{
				variant("v4-one", "Size", "One Size", true),
			},
		},
		{
			ID:          "demo-5",
			Title:       "Anhedonia CD",
			Price:       decimal.NewFromInt(15),
			Image:       placeholderImage + "CD",
			Category:    "music",
			Description: "Physical CD with 12-page booklet and bonus tracks.",
			Options:     []models.Option{{Name: "Edition", Values: []string{"Standard Edition", "Deluxe Edition"}}},
			Variants: []models.Variant{
				variant("v5-standard", "Edition", "Standard Edition", true),
				variant("v5-deluxe", "Edition", "Deluxe Edition", false),
			},
			Badge: models.BadgeSoldOut,
		},
		{
			ID:             "demo-6",
			Title:          "Metal Band Tank Top",
			Price:          decimal.NewFromInt(22),
			CompareAtPrice: price(28),
			Image:          placeholderImage + "Tank+Top",
			Category:       "apparel",
			Description:    "Summer essential tank top with bold graphics.",
			Options:        []models.Option{{Name: "Size", Values: []string{"Small", "Medium", "Large", "XL"}}},
			Variants: []models.Variant{
				variant("v6-s", "Size", "Small", true),
				variant("v6-m", "Size", "Medium", true),
				variant("v6-l", "Size", "Large", true),
				variant("v6-xl", "Size", "XL", true),
			},
			Badge: models.BadgeSale,
		},
		{
			ID:          "demo-7",
			Title:       "Guitar Pick Set",
			Price:       decimal.NewFromInt(10),
			Image:       placeholderImage + "Pick+Set",
			Category:    "accessories",
			Description: "Set of 6 custom Emberwake guitar picks.",
			Options:     []models.Option{{Name: "Style", Values: []string{"Standard Set"}}},
			Variants: []models.Variant{
				variant("v7-standard", "Style", "Standard Set", true),
			},
		},
		{
			ID:          "demo-8",
			Title:       "Tour Poster",
			Price:       decimal.NewFromInt(18),
			Image:       placeholderImage + "Tour+Poster",
			Category:    "accessories",
			Description: `18"x24" high-quality tour poster.`,
			Options:     []models.Option{{Name: "Edition", Values: []string{"Unsigned", "Signed by Band"}}},
			Variants: []models.Variant{
				variant("v8-unsigned", "Edition", "Unsigned", true),
				variant("v8-signed", "Edition", "Signed by Band", false),
			},
			Badge: models.BadgeNew,
		},
	}
}

func variant(id, option, value string, available bool) models.Variant {
	return models.Variant{
		ID:        id,
		Title:     value,
		Available: available,
		Options:   map[string]string{option: value},
	}
}

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
