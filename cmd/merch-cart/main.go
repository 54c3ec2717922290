package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emberwake/merch-cart/internal/api/handlers"
	"github.com/emberwake/merch-cart/internal/api/middleware"
	"github.com/emberwake/merch-cart/internal/cache"
	"github.com/emberwake/merch-cart/internal/catalog"
	"github.com/emberwake/merch-cart/internal/config"
	"github.com/emberwake/merch-cart/internal/health"
	"github.com/emberwake/merch-cart/internal/metrics"
	"github.com/emberwake/merch-cart/internal/presenter"
	repository "github.com/emberwake/merch-cart/internal/repositories"
	service "github.com/emberwake/merch-cart/internal/services"
	"github.com/emberwake/merch-cart/internal/tracing"
	"github.com/emberwake/merch-cart/pkg/storefront"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const feedEvictInterval = time.Minute

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Tracing setup
	shutdownTracing, err := tracing.Setup(ctx, cfg.Otel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	// Cart storage setup
	slots := repository.NewRedisSlotStore(redisClient, cfg.Storage.CartTTL)

	if cfg.Storage.Backend == config.StorageBackendPostgres {
		repos, err := repository.NewPostgres(ctx, cfg)
		if err != nil {
			slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
			os.Exit(1)
		}

		defer func() {
			if err := repos.Close(); err != nil {
				slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
			} else {
				slog.Info("✅ Database connection closed")
			}
		}()

		slots = repos.Slots
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("backend", cfg.Storage.Backend))

	// Catalog setup
	configured := cfg.Storefront.Configured()

	var (
		storefrontClient storefront.Client
		remote           catalog.Provider
	)

	if configured {
		storefrontClient = storefront.NewClient(cfg.Storefront.Domain, cfg.Storefront.AccessToken, cfg.Storefront.Timeout)
		remote = catalog.NewRemoteProvider(storefrontClient, cache.NewRedisCache(redisClient, &cfg.Cache), catalog.RemoteConfig{
			CollectionID:   cfg.Storefront.CollectionID,
			PageSize:       cfg.Storefront.ProductsPerPage,
			CacheTTL:       cfg.Cache.CatalogTTL,
			NewProductDays: cfg.Storefront.NewProductDays,
		})
	} else {
		slog.Warn("Storefront not configured, every session runs in demo mode")
	}

	feeds := catalog.NewFeedRegistry(cfg.Feed.IdleTTL)
	go feeds.Run(ctx, feedEvictInterval)

	// Services
	cartRepo := repository.NewCartRepo(slots)
	modeService := service.NewModeService(repository.NewModeRepo(slots), configured)
	catalogService := service.NewCatalogService(catalog.NewStaticProvider(catalog.DemoProducts()), remote, feeds)
	cartService := service.NewCartService(cartRepo, catalogService, presenter.New(cfg.Cart.CurrencySymbol, cfg.Cart.MaxQuantity), cfg.Cart.MaxQuantity)
	selectionService := service.NewSelectionService(catalogService, cartService, cfg.Cart.MaxQuantity)
	checkoutService := service.NewCheckoutService(cartService, storefrontClient)

	// Handlers
	modeHandler := handlers.NewModeHandler(modeService)
	catalogHandler := handlers.NewCatalogHandler(modeService, catalogService)
	selectionHandler := handlers.NewSelectionHandler(modeService, selectionService)
	cartHandler := handlers.NewCartHandler(modeService, cartService)
	checkoutHandler := handlers.NewCheckoutHandler(modeService, checkoutService)

	sessions := middleware.NewSessions([]byte(cfg.Security.SessionKey), time.Duration(cfg.Security.SessionExpiryHours)*time.Hour)
	limited := middleware.RateLimit(repository.NewRateLimitRepo(redisClient, cfg.RateConfig))

	healthHandler, err := health.NewHealthHandler(health.Checks(cfg, &health.Endpoints{Storefront: storefrontClient})...)
	if err != nil {
		slog.Error("❌ Error creating health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Setup router
	api := http.NewServeMux()
	api.HandleFunc("GET /api/v1/mode", modeHandler.GetMode())
	api.HandleFunc("PUT /api/v1/mode", modeHandler.SetMode())
	api.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts())
	api.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct())
	api.HandleFunc("POST /api/v1/products/{id}/selection", selectionHandler.Preview())
	api.Handle("POST /api/v1/products/{id}/selection/confirm", limited(selectionHandler.Confirm()))
	api.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	api.Handle("DELETE /api/v1/cart", limited(cartHandler.ClearCart()))
	api.Handle("POST /api/v1/cart/items", limited(cartHandler.AddItem()))
	api.Handle("PUT /api/v1/cart/items", limited(cartHandler.UpdateQuantity()))
	api.Handle("DELETE /api/v1/cart/items", limited(cartHandler.RemoveItem()))
	api.Handle("POST /api/v1/cart/events", limited(cartHandler.HandleEvent()))
	api.HandleFunc("POST /api/v1/checkout", checkoutHandler.Checkout())

	routerMux := http.NewServeMux()
	routerMux.Handle("/api/", sessions.Handle(metrics.Middleware(api)))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "merch-cart")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr), slog.Bool("storefront_configured", configured))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// stops feed eviction
	stop()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
