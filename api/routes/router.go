package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/threadline/threadline-backend/api/controllers"
	"github.com/threadline/threadline-backend/api/middleware"
	"github.com/threadline/threadline-backend/internal/cart"
	"github.com/threadline/threadline-backend/internal/orders"
	"github.com/threadline/threadline-backend/internal/products"
	"github.com/threadline/threadline-backend/internal/saveditems"
	"github.com/threadline/threadline-backend/internal/users"
	"github.com/threadline/threadline-backend/internal/wishlist"
	"github.com/threadline/threadline-backend/pkg/config"
	"github.com/threadline/threadline-backend/pkg/db"
	"github.com/threadline/threadline-backend/pkg/logger"
	"github.com/threadline/threadline-backend/pkg/metrics"
	"github.com/threadline/threadline-backend/pkg/redis"
)

// RouterParams carries everything the HTTP surface needs.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Registry *prometheus.Registry

	ProductService   products.Service
	CartService      cart.Service
	WishlistService  wishlist.Service
	SavedItemService saveditems.Service
	OrderService     orders.Service
	UserService      users.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	registry := p.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	httpMetrics := metrics.NewHTTPMetrics(registry)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Storefront surface, no credentials required.
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(p.ProductService, logg))
		r.Get("/{productId}", controllers.GetProduct(p.ProductService, logg))
	})

	// Guest cart, keyed by the session header.
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", controllers.GetCart(p.CartService, logg))
		r.Post("/", controllers.AddCartItem(p.CartService, logg))
		r.Delete("/", controllers.ClearCart(p.CartService, logg))
		r.Patch("/{productId}", controllers.UpdateCartQuantity(p.CartService, logg))
		r.Delete("/{productId}", controllers.RemoveCartItem(p.CartService, logg))
	})

	// Authenticated shopper surface.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/api/v1/wishlist", func(r chi.Router) {
			r.Get("/", controllers.ListWishlist(p.WishlistService, logg))
			r.Post("/", controllers.AddWishlistItem(p.WishlistService, logg))
			r.Delete("/{productId}", controllers.RemoveWishlistItem(p.WishlistService, logg))
		})

		r.Route("/api/v1/saved-items", func(r chi.Router) {
			r.Get("/", controllers.ListSavedItems(p.SavedItemService, logg))
			r.Post("/", controllers.SaveItem(p.SavedItemService, logg))
			r.Delete("/{productId}", controllers.RemoveSavedItem(p.SavedItemService, logg))
		})

		r.Route("/api/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(p.OrderService, logg))
			r.Post("/", controllers.CreateOrder(p.OrderService, logg))
			r.Get("/{orderId}", controllers.GetOrder(p.OrderService, logg))
		})

		r.Route("/api/v1/profile", func(r chi.Router) {
			r.Get("/", controllers.GetProfile(p.UserService, logg))
			r.Put("/", controllers.UpdateProfile(p.UserService, logg))
		})
	})

	// Back-office surface.
	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole("admin", logg))

		r.Get("/products/stats", controllers.ProductStats(p.ProductService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminWriteRateLimit(cfg.RateLimit, p.Redis, logg))

			r.Post("/products", controllers.CreateProduct(p.ProductService, logg))
			r.Post("/products/suggest", controllers.SuggestProduct(p.ProductService, logg))
			r.Post("/products/bulk-delete", controllers.BulkDeleteProducts(p.ProductService, logg))
			r.Put("/products/{productId}", controllers.UpdateProduct(p.ProductService, logg))
			r.Patch("/products/{productId}/featured", controllers.SetProductFeatured(p.ProductService, logg))
			r.Patch("/products/{productId}/stock", controllers.AdjustProductStock(p.ProductService, logg))
			r.Delete("/products/{productId}", controllers.DeleteProduct(p.ProductService, logg))

			r.Patch("/orders/{orderId}/status", controllers.UpdateOrderStatus(p.OrderService, logg))
		})
	})

	return r
}
