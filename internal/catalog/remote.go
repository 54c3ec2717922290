package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/emberwake/merch-cart/internal/cache"
	appErrors "github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/metrics"
	"github.com/emberwake/merch-cart/internal/models"
	"github.com/emberwake/merch-cart/pkg/storefront"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/singleflight"
)

const (
	placeholderProductImage = "/Assets/placeholder-product.jpg"
	allCollections          = "all"
)

type RemoteConfig struct {
	CollectionID   string
	PageSize       int
	CacheTTL       time.Duration
	NewProductDays int
}

// RemoteProvider reads the storefront page by page and caches every page.
type RemoteProvider struct {
	client storefront.Client
	cache  cache.Cache
	cfg    RemoteConfig
	policy *bluemonday.Policy
	sfg    singleflight.Group // collapses concurrent fetches of one page
	now    func() time.Time
	logger *slog.Logger
}

func NewRemoteProvider(client storefront.Client, c cache.Cache, cfg RemoteConfig) *RemoteProvider {
	if cfg.PageSize < 1 {
		cfg.PageSize = 8
	}

	return &RemoteProvider{
		client: client,
		cache:  c,
		cfg:    cfg,
		policy: bluemonday.UGCPolicy(),
		now:    time.Now,
		logger: slog.Default(),
	}
}

func (r *RemoteProvider) ListProducts(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {

	page := max(filter.Page, 1)

	collection := r.cfg.CollectionID
	if collection == "" {
		collection = allCollections
	}

	key := cache.Key(cache.CatalogKeyPrefix, collection, strconv.Itoa(page))

	var cached []*models.Product

	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		r.logger.Warn("Catalog cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	if found {
		metrics.CatalogFetches.WithLabelValues(string(SourceRemote), "cache_hit").Inc()
		return filter.Apply(cached), nil
	}

	// the shared fetch must outlive a superseded caller; the client timeout bounds it
	fetchCtx := context.WithoutCancel(ctx)
	ch := r.sfg.DoChan(key, func() (any, error) {
		return r.fetchPage(fetchCtx, key, page)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			metrics.CatalogFetches.WithLabelValues(string(SourceRemote), "error").Inc()
			return nil, appErrors.NetworkFailureError(appErrors.MsgLoadError).WithError(res.Err)
		}

		metrics.CatalogFetches.WithLabelValues(string(SourceRemote), "fetched").Inc()

		return filter.Apply(res.Val.([]*models.Product)), nil
	}
}

func (r *RemoteProvider) GetProduct(ctx context.Context, id string) (*models.Product, error) {

	key := cache.Key(cache.ProductKeyPrefix, id)

	var cached models.Product

	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		r.logger.Warn("Product cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	if found {
		return &cached, nil
	}

	sp, err := r.client.Product(ctx, id)
	if err != nil {
		if errors.Is(err, storefront.ErrNotFound) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}
		return nil, appErrors.NetworkFailureError(appErrors.MsgNetworkError).WithError(err)
	}

	product := r.toProduct(*sp)
	r.store(ctx, key, product)

	return product, nil
}

func (r *RemoteProvider) fetchPage(ctx context.Context, key string, page int) ([]*models.Product, error) {

	raw, err := r.client.Products(ctx, storefront.ProductsQuery{
		CollectionID: r.cfg.CollectionID,
		Limit:        r.cfg.PageSize,
		Page:         page,
	})
	if err != nil {
		return nil, err
	}

	products := make([]*models.Product, 0, len(raw))
	for _, sp := range raw {
		product := r.toProduct(sp)
		products = append(products, product)
		r.store(ctx, cache.Key(cache.ProductKeyPrefix, product.ID), product)
	}

	r.store(ctx, key, products)

	return products, nil
}

func (r *RemoteProvider) store(ctx context.Context, key string, value any) {
	if err := r.cache.Set(ctx, key, value, r.cfg.CacheTTL); err != nil {
		r.logger.Warn("Catalog cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (r *RemoteProvider) toProduct(sp storefront.Product) *models.Product {

	id := sp.Handle
	if id == "" {
		id = strconv.FormatInt(sp.ID, 10)
	}

	image := placeholderProductImage
	if len(sp.Images) > 0 && sp.Images[0].Src != "" {
		image = sp.Images[0].Src
	}

	options := make([]storefront.Option, len(sp.Options))
	copy(options, sp.Options)
	sort.SliceStable(options, func(i, j int) bool { return options[i].Position < options[j].Position })

	product := &models.Product{
		ID:          id,
		Title:       sp.Title,
		Image:       image,
		Description: r.policy.Sanitize(sp.BodyHTML),
		Category:    strings.ToLower(strings.TrimSpace(sp.ProductType)),
		CreatedAt:   sp.CreatedAt,
	}

	for _, o := range options {
		product.Options = append(product.Options, models.Option{Name: o.Name, Values: o.Values})
	}

	for _, sv := range sp.Variants {
		price := sv.Price
		variant := models.Variant{
			ID:        strconv.FormatInt(sv.ID, 10),
			Title:     sv.Title,
			Available: sv.Available,
			Price:     &price,
			Options:   make(map[string]string, len(options)),
		}

		if sv.CompareAtPrice.Valid {
			compare := sv.CompareAtPrice.Decimal
			variant.CompareAtPrice = &compare
		}

		for i, value := range sv.OptionValues() {
			if i < len(options) {
				variant.Options[options[i].Name] = value
			}
		}

		product.Variants = append(product.Variants, variant)
	}

	if first := product.FirstVariant(); first != nil {
		product.Price = *first.Price
		product.CompareAtPrice = first.CompareAtPrice
	}

	product.Badge = r.badgeFor(product)

	return product
}

// badgeFor picks a single badge: sold out, then sale, then new.
func (r *RemoteProvider) badgeFor(p *models.Product) models.Badge {

	if first := p.FirstVariant(); first == nil || !first.Available {
		return models.BadgeSoldOut
	}

	if p.OnSale() {
		return models.BadgeSale
	}

	if r.cfg.NewProductDays > 0 && !p.CreatedAt.IsZero() &&
		r.now().Sub(p.CreatedAt) <= time.Duration(r.cfg.NewProductDays)*24*time.Hour {
		return models.BadgeNew
	}

	return models.BadgeNone
}
