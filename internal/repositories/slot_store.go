package repository

import (
	"context"
	"errors"
)

var ErrSlotNotFound = errors.New("slot not found")

// SlotStore is a durable key-value store for serialised cart state. One slot
// holds one whole document and a Put replaces it.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
