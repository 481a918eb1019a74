package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mohdnadeem3849/kubecart/internal/metrics"
)

// Pinger is the health probe's view of the database.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter wires the full HTTP surface: cart, checkout, orders, the admin
// status endpoint, health and metrics.
func NewRouter(
	cart *CartHandler,
	checkout *CheckoutHandler,
	orders *OrdersHandler,
	db Pinger,
	requestTimeout time.Duration,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			respondError(w, http.StatusServiceUnavailable, "unhealthy", "database unreachable")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(Auth)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.List)
			r.Post("/items", cart.AddItem)
			r.Delete("/items/{line_id}", cart.RemoveItem)
		})

		r.Post("/checkout", checkout.Checkout)

		r.Get("/", orders.ListOrders)
		r.Get("/{order_id}", orders.GetOrder)

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Put("/{order_id}/status", orders.UpdateStatus)
		})
	})

	return r
}
