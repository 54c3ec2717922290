package cache

import (
	"context"
	"strings"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Close() error
}

// Key joins a prefix and one or more id parts with ":".
func Key(prefix string, parts ...string) string {
	return prefix + ":" + strings.Join(parts, ":")
}

const (
	CatalogKeyPrefix = "catalog"
	ProductKeyPrefix = "product"
	CartKeyPrefix    = "cart"
	ModeKeyPrefix    = "mode"
)
