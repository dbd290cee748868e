package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oskarlind/storefront-backend/api/controllers"
	"github.com/oskarlind/storefront-backend/api/middleware"
	"github.com/oskarlind/storefront-backend/internal/cart"
	checkoutsvc "github.com/oskarlind/storefront-backend/internal/checkout"
	"github.com/oskarlind/storefront-backend/internal/orders"
	"github.com/oskarlind/storefront-backend/internal/products"
	"github.com/oskarlind/storefront-backend/pkg/config"
	"github.com/oskarlind/storefront-backend/pkg/db"
	"github.com/oskarlind/storefront-backend/pkg/logger"
	pkgredis "github.com/oskarlind/storefront-backend/pkg/redis"
)

// Dependencies collects everything the router mounts.
type Dependencies struct {
	DBPinger         db.Pinger
	RedisPinger      pkgredis.Pinger
	IdempotencyStore pkgredis.IdempotencyStore
	CartService      cart.Service
	ProductService   products.Service
	CheckoutService  checkoutsvc.Service
	OrderService     orders.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.CORS())

	r.Get("/healthz/live", controllers.HealthLive(cfg))
	r.Get("/healthz/ready", controllers.HealthReady(cfg, deps.DBPinger, deps.RedisPinger, logg))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(deps.ProductService, logg))
		r.Get("/products/{productID}", controllers.GetProduct(deps.ProductService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Get("/cart", controllers.GetCart(deps.CartService, logg))
			r.Delete("/cart", controllers.ClearCart(deps.CartService, logg))
			r.Post("/cart/items", controllers.AddCartItem(deps.CartService, deps.ProductService, logg))
			r.Post("/cart/items/{productID}/decrease", controllers.DecreaseCartItem(deps.CartService, logg))
			r.Delete("/cart/items/{productID}", controllers.RemoveCartItem(deps.CartService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCustomer(logg))

				r.With(middleware.Idempotency(deps.IdempotencyStore, logg, cfg.Checkout.IdempotencyTTL)).
					Post("/checkout", controllers.PlaceOrder(deps.CheckoutService, logg, cfg.Checkout.PlacementTimeout))

				r.Get("/orders", controllers.ListOrders(deps.OrderService, logg))
				r.Get("/orders/{orderID}", controllers.GetOrder(deps.OrderService, logg))
			})
		})

		r.Patch("/admin/orders/{orderID}/status", controllers.UpdateOrderStatus(deps.OrderService, logg))
	})

	return r
}
