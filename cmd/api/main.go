package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oskarlind/storefront-backend/api/routes"
	"github.com/oskarlind/storefront-backend/internal/cart"
	checkoutsvc "github.com/oskarlind/storefront-backend/internal/checkout"
	"github.com/oskarlind/storefront-backend/internal/inventory"
	"github.com/oskarlind/storefront-backend/internal/orders"
	"github.com/oskarlind/storefront-backend/internal/products"
	"github.com/oskarlind/storefront-backend/internal/shipping"
	"github.com/oskarlind/storefront-backend/pkg/config"
	"github.com/oskarlind/storefront-backend/pkg/db"
	"github.com/oskarlind/storefront-backend/pkg/logger"
	"github.com/oskarlind/storefront-backend/pkg/metrics"
	"github.com/oskarlind/storefront-backend/pkg/migrate"
	"github.com/oskarlind/storefront-backend/pkg/redis"
	"github.com/oskarlind/storefront-backend/pkg/types"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	cartStorage, err := cart.NewRedisStorage(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart storage", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartStorage, cart.NopNotifier{})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	stockGateway, err := inventory.NewGateway(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory gateway", err)
		os.Exit(1)
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	orderService, err := orders.NewService(ordersRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(
		dbClient,
		cartService,
		stockGateway,
		ordersRepo,
		shipping.RatesFromConfig(cfg.Shipping),
		pickupAddress(cfg.Pickup),
		logg,
		metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Dependencies{
			DBPinger:         dbClient,
			RedisPinger:      redisClient,
			IdempotencyStore: redisClient,
			CartService:      cartService,
			ProductService:   productService,
			CheckoutService:  checkoutService,
			OrderService:     orderService,
		}),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	}()

	<-shutdown
	logg.Info(ctx, "shutting down api server")

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(stopCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
}

func pickupAddress(cfg config.PickupConfig) types.Address {
	return types.Address{
		Name:       cfg.Name,
		Street:     cfg.Street,
		City:       cfg.City,
		PostalCode: cfg.PostalCode,
		Country:    cfg.Country,
	}
}
