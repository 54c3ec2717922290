package service_test

import (
	"testing"
	"time"

	"github.com/emberwake/merch-cart/internal/catalog"
	"github.com/emberwake/merch-cart/internal/models"
	service "github.com/emberwake/merch-cart/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogProvider(t *testing.T) {
	static := catalog.NewStaticProvider(catalog.DemoProducts())
	remote := catalog.NewStaticProvider([]*models.Product{{ID: "live-1", Title: "Live Shirt"}})

	t.Run("Live Uses Remote", func(t *testing.T) {
		s := service.NewCatalogService(static, remote, catalog.NewFeedRegistry(time.Minute))

		assert.Same(t, remote, s.Provider(models.ModeLive))
		assert.Same(t, static, s.Provider(models.ModeDemo))
	})

	t.Run("Live Without Remote Uses Static", func(t *testing.T) {
		s := service.NewCatalogService(static, nil, catalog.NewFeedRegistry(time.Minute))

		assert.Same(t, static, s.Provider(models.ModeLive))
	})
}

func TestCatalogListProducts(t *testing.T) {
	// Arrange
	feeds := catalog.NewFeedRegistry(time.Minute)
	s := service.NewCatalogService(catalog.NewStaticProvider(catalog.DemoProducts()), nil, feeds)

	// Act
	view, err := s.ListProducts(t.Context(), models.ModeDemo, "s1", models.ProductFilter{Category: "apparel"})

	// Assert
	require.NoError(t, err)
	require.Len(t, view.Products, 3)
	assert.Equal(t, "demo-1", view.Products[0].ID)
	assert.Equal(t, 1, feeds.Len())
	assert.Len(t, feeds.Get("demo:s1").Current().Products, 3)
}

func TestCatalogGetProduct(t *testing.T) {
	s := service.NewCatalogService(catalog.NewStaticProvider(catalog.DemoProducts()), nil, catalog.NewFeedRegistry(time.Minute))

	product, err := s.GetProduct(t.Context(), models.ModeDemo, "demo-8")

	require.NoError(t, err)
	assert.Equal(t, "Tour Poster", product.Title)
}
