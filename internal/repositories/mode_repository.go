package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/emberwake/merch-cart/internal/api/middleware"
	"github.com/emberwake/merch-cart/internal/cache"
)

func ModeSlot(session string) string {
	return cache.Key(cache.ModeKeyPrefix, session)
}

type ModeRepository interface {
	// DemoFlag reports the stored flag and whether one was stored at all.
	DemoFlag(ctx context.Context, session string) (demo bool, set bool, err error)
	SetDemoFlag(ctx context.Context, session string, demo bool) error
}

type modeRepository struct {
	slots SlotStore
}

func NewModeRepo(slots SlotStore) ModeRepository {
	return &modeRepository{slots: slots}
}

func (r *modeRepository) DemoFlag(ctx context.Context, session string) (bool, bool, error) {

	key := ModeSlot(session)

	data, err := r.slots.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("failed to load demo flag: %w", err)
	}

	demo, err := strconv.ParseBool(string(data))
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Ignoring malformed demo flag", slog.String("slot", key), slog.String("value", string(data)))
		return false, false, nil
	}

	return demo, true, nil
}

func (r *modeRepository) SetDemoFlag(ctx context.Context, session string, demo bool) error {
	return r.slots.Put(ctx, ModeSlot(session), []byte(strconv.FormatBool(demo)))
}
