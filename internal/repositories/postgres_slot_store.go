package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emberwake/merch-cart/internal/utils"
)

const createSlotsTable = `
	CREATE TABLE IF NOT EXISTS cart_slots (
		slot_key   TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

type postgresSlotStore struct {
	DB  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewPostgresSlotStore stores slots in the cart_slots table. Rows older than
// ttl are treated as missing.
func NewPostgresSlotStore(db *sql.DB, ttl time.Duration) SlotStore {
	return &postgresSlotStore{DB: db, ttl: ttl, now: time.Now}
}

// EnsureSlotsTable creates the cart_slots table when it does not exist yet.
func EnsureSlotsTable(ctx context.Context, db *sql.DB) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := db.ExecContext(dbCtx, createSlotsTable); err != nil {
		return fmt.Errorf("failed to create cart_slots table: %w", err)
	}

	return nil
}

func (s *postgresSlotStore) Get(ctx context.Context, key string) ([]byte, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT value
		FROM cart_slots
		WHERE slot_key = $1 AND updated_at > $2
	`

	var value []byte

	err := s.DB.QueryRowContext(dbCtx, query, key, s.now().Add(-s.ttl)).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return value, nil
}

func (s *postgresSlotStore) Put(ctx context.Context, key string, value []byte) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_slots (slot_key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot_key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.DB.ExecContext(dbCtx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert slot %s: %w", key, err)
	}

	return nil
}

func (s *postgresSlotStore) Delete(ctx context.Context, key string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := s.DB.ExecContext(dbCtx, `DELETE FROM cart_slots WHERE slot_key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}

	return nil
}
