package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/emberwake/merch-cart/internal/api/middleware"
	"github.com/emberwake/merch-cart/internal/cache"
	"github.com/emberwake/merch-cart/internal/cart"
	"github.com/emberwake/merch-cart/internal/models"
)

// CartSlot names the slot holding a session's cart in the given mode. Demo
// and live carts never share a slot.
func CartSlot(mode models.Mode, session string) string {
	return cache.Key(cache.CartKeyPrefix, string(mode), session)
}

type CartRepository interface {
	Load(ctx context.Context, slot string) (*cart.Cart, error)
	Save(ctx context.Context, slot string, c *cart.Cart) error
	Clear(ctx context.Context, slot string) error
}

type cartRepository struct {
	slots SlotStore
}

func NewCartRepo(slots SlotStore) CartRepository {
	return &cartRepository{slots: slots}
}

// Load returns an empty cart when the slot is missing or holds something that
// is not a line array. Only transport failures are returned.
func (r *cartRepository) Load(ctx context.Context, slot string) (*cart.Cart, error) {

	logger := middleware.LoggerFromContext(ctx)

	data, err := r.slots.Get(ctx, slot)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return cart.New(), nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c := cart.New()
	if err := json.Unmarshal(data, c); err != nil {
		logger.Warn("Discarding malformed cart record", slog.String("slot", slot), slog.Any("error", err))
		return cart.New(), nil
	}

	return c, nil
}

func (r *cartRepository) Save(ctx context.Context, slot string, c *cart.Cart) error {

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	return r.slots.Put(ctx, slot, data)
}

func (r *cartRepository) Clear(ctx context.Context, slot string) error {
	return r.slots.Delete(ctx, slot)
}
