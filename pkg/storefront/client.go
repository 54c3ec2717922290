package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const accessTokenHeader = "X-Shopify-Storefront-Access-Token"

var (
	ErrNotFound      = errors.New("storefront: resource not found")
	ErrEmptyCheckout = errors.New("storefront: checkout requires at least one line")
)

// StatusError is returned for non-2xx responses other than 404.
type StatusError struct {
	StatusCode int
	Path       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("storefront: %s returned status %d", e.Path, e.StatusCode)
}

type Image struct {
	Src string `json:"src"`
}

type Option struct {
	Name     string   `json:"name"`
	Position int      `json:"position"`
	Values   []string `json:"values"`
}

type Variant struct {
	ID             int64               `json:"id"`
	Title          string              `json:"title"`
	Option1        *string             `json:"option1"`
	Option2        *string             `json:"option2"`
	Option3        *string             `json:"option3"`
	Price          decimal.Decimal     `json:"price"`
	CompareAtPrice decimal.NullDecimal `json:"compare_at_price"`
	Available      bool                `json:"available"`
}

// OptionValues returns option1..option3 in position order, skipping unset ones.
func (v Variant) OptionValues() []string {
	var values []string

	for _, o := range []*string{v.Option1, v.Option2, v.Option3} {
		if o != nil {
			values = append(values, *o)
		}
	}

	return values
}

type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	BodyHTML    string    `json:"body_html"`
	ProductType string    `json:"product_type"`
	CreatedAt   time.Time `json:"created_at"`
	Variants    []Variant `json:"variants"`
	Images      []Image   `json:"images"`
	Options     []Option  `json:"options"`
}

type ProductsQuery struct {
	CollectionID string
	Limit        int
	Page         int
}

type CheckoutLine struct {
	VariantID string
	Quantity  int
}

// Client is the subset of the storefront used by the merch catalog.
type Client interface {
	Products(ctx context.Context, query ProductsQuery) ([]Product, error)
	Product(ctx context.Context, handle string) (*Product, error)
	CheckoutURL(lines []CheckoutLine) (string, error)
	Ping(ctx context.Context) error
}

type httpClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type ClientOption func(*httpClient)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *httpClient) {
		c.httpClient = hc
	}
}

func NewClient(domain, token string, timeout time.Duration, opts ...ClientOption) Client {
	c := &httpClient{
		baseURL: "https://" + strings.TrimRight(domain, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type productsResponse struct {
	Products []Product `json:"products"`
}

// detailVariant shadows Variant.Available so a missing field can be told
// apart from false. The single-product JSON omits it.
type detailVariant struct {
	Variant
	Available *bool `json:"available"`
}

type detailProduct struct {
	Product
	Variants []detailVariant `json:"variants"`
}

type productResponse struct {
	Product detailProduct `json:"product"`
}

// availabilityResponse is the part of the product .js document that carries stock.
type availabilityResponse struct {
	Variants []struct {
		ID        int64 `json:"id"`
		Available bool  `json:"available"`
	} `json:"variants"`
}

func (c *httpClient) Products(ctx context.Context, query ProductsQuery) ([]Product, error) {

	path := "/products.json"
	if query.CollectionID != "" {
		path = "/collections/" + url.PathEscape(query.CollectionID) + "/products.json"
	}

	params := url.Values{}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}

	var resp productsResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	return resp.Products, nil
}

func (c *httpClient) Product(ctx context.Context, handle string) (*Product, error) {

	path := "/products/" + url.PathEscape(handle)

	var resp productResponse
	if err := c.get(ctx, path+".json", nil, &resp); err != nil {
		return nil, err
	}

	product := resp.Product.Product
	product.Variants = make([]Variant, 0, len(resp.Product.Variants))

	missing := false
	for _, dv := range resp.Product.Variants {
		v := dv.Variant
		if dv.Available == nil {
			missing = true
		} else {
			v.Available = *dv.Available
		}
		product.Variants = append(product.Variants, v)
	}

	if missing {
		var stock availabilityResponse
		if err := c.get(ctx, path+".js", nil, &stock); err != nil {
			return nil, fmt.Errorf("failed to read availability for %s: %w", handle, err)
		}

		available := make(map[int64]bool, len(stock.Variants))
		for _, sv := range stock.Variants {
			available[sv.ID] = sv.Available
		}

		for i := range product.Variants {
			product.Variants[i].Available = available[product.Variants[i].ID]
		}
	}

	return &product, nil
}

// CheckoutURL builds a cart permalink that pre-fills the storefront checkout.
func (c *httpClient) CheckoutURL(lines []CheckoutLine) (string, error) {

	if len(lines) == 0 {
		return "", ErrEmptyCheckout
	}

	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("%s:%d", url.PathEscape(line.VariantID), line.Quantity))
	}

	return c.baseURL + "/cart/" + strings.Join(parts, ","), nil
}

func (c *httpClient) Ping(ctx context.Context) error {
	_, err := c.Products(ctx, ProductsQuery{Limit: 1})
	return err
}

func (c *httpClient) get(ctx context.Context, path string, params url.Values, dest any) error {

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build storefront request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set(accessTokenHeader, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storefront request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, Path: path}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode storefront response for %s: %w", path, err)
	}

	return nil
}
