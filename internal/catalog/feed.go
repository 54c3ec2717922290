package catalog

import (
	"context"
	"sync"
	"time"

	appErrors "github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/metrics"
	"github.com/emberwake/merch-cart/internal/models"
)

// Ticket identifies one catalog request issued by a Feed.
type Ticket struct {
	seq    uint64
	cancel context.CancelFunc
}

// View is what a Feed shows after a request settles.
type View struct {
	Products []*models.Product `json:"products"`
	Notice   string            `json:"notice,omitempty"`
}

// Feed is a latest-wins view over a Provider. Only the newest request may
// change what is shown; older ones are cancelled and their results dropped.
type Feed struct {
	mu       sync.Mutex
	seq      uint64
	cancel   context.CancelFunc
	products []*models.Product
	notice   string
	touched  time.Time
}

func NewFeed() *Feed {
	return &Feed{products: []*models.Product{}, touched: time.Now()}
}

// Begin cancels the in-flight request, if any, and issues a new ticket.
func (f *Feed) Begin(ctx context.Context) (context.Context, Ticket) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
	}

	reqCtx, cancel := context.WithCancel(ctx)

	f.seq++
	f.cancel = cancel
	f.touched = time.Now()

	return reqCtx, Ticket{seq: f.seq, cancel: cancel}
}

// Complete applies a result if t is still the newest ticket. A failed request
// keeps the last good products and attaches a notice.
func (f *Feed) Complete(t Ticket, products []*models.Product, err error) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	if t.seq != f.seq {
		return View{}, appErrors.StaleResponseError("A newer catalog request superseded this one")
	}

	f.cancel = nil
	f.touched = time.Now()

	if err != nil {
		f.notice = appErrors.MsgLoadError
		return f.view(), err
	}

	f.products = products
	f.notice = ""

	return f.view(), nil
}

// Load runs one request through Begin and Complete.
func (f *Feed) Load(ctx context.Context, provider Provider, filter models.ProductFilter) (View, error) {
	reqCtx, ticket := f.Begin(ctx)

	products, err := provider.ListProducts(reqCtx, filter)

	return f.Complete(ticket, products, err)
}

// Current returns the last applied view.
func (f *Feed) Current() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.view()
}

func (f *Feed) view() View {
	products := make([]*models.Product, len(f.products))
	copy(products, f.products)

	return View{Products: products, Notice: f.notice}
}

func (f *Feed) idleSince(now time.Time) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()

	return now.Sub(f.touched)
}

// FeedRegistry keeps one Feed per session.
type FeedRegistry struct {
	mu      sync.Mutex
	feeds   map[string]*Feed
	idleTTL time.Duration
}

func NewFeedRegistry(idleTTL time.Duration) *FeedRegistry {
	return &FeedRegistry{
		feeds:   make(map[string]*Feed),
		idleTTL: idleTTL,
	}
}

func (r *FeedRegistry) Get(session string) *Feed {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.feeds[session]
	if !ok {
		f = NewFeed()
		r.feeds[session] = f
	}

	return f
}

func (r *FeedRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.feeds)
}

// Evict drops feeds idle for longer than the registry's TTL and returns how many went.
func (r *FeedRegistry) Evict(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for session, f := range r.feeds {
		if f.idleSince(now) > r.idleTTL {
			delete(r.feeds, session)
			evicted++
		}
	}

	return evicted
}

// Run evicts idle feeds every interval until ctx is done.
func (r *FeedRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Evict(now)
			metrics.ActiveFeeds.Set(float64(r.Len()))
		}
	}
}
