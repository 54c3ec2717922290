package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/emberwake/merch-cart/internal/config"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB    *sql.DB
	Slots SlotStore
}

// NewPostgres opens the traced connection pool and prepares the cart_slots table.
func NewPostgres(ctx context.Context, cfg *config.Config) (*Repository, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := EnsureSlotsTable(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Repository{DB: db, Slots: NewPostgresSlotStore(db, cfg.Storage.CartTTL)}, nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
