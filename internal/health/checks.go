package health

import (
	"context"
	"fmt"
	"time"

	"github.com/emberwake/merch-cart/internal/config"
	"github.com/emberwake/merch-cart/pkg/storefront"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const (
	componentName    = "merch-cart"
	componentVersion = "1.0.0"
)

// Endpoints holds the optional dependencies probed by /health.
type Endpoints struct {
	Storefront storefront.Client
}

// Checks lists the probes for the configured backends. Redis is always
// probed; Postgres only when it stores carts; the storefront only when one is
// configured, and its failure degrades rather than fails the service.
func Checks(cfg *config.Config, endpoints *Endpoints) []health.Config {

	checks := []health.Config{
		{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		},
	}

	if cfg.Storage.Backend == config.StorageBackendPostgres {
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	}

	if endpoints != nil && endpoints.Storefront != nil {
		checks = append(checks, health.Config{
			Name:      "storefront",
			Timeout:   5 * time.Second,
			SkipOnErr: true,
			Check:     storefrontCheck(endpoints.Storefront),
		})
	}

	return checks
}

func storefrontCheck(client storefront.Client) health.CheckFunc {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach storefront: %w", err)
		}
		return nil
	}
}

func NewHealthHandler(checks ...health.Config) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    componentName,
			Version: componentVersion,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
