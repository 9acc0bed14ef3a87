package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sportshop/checkout-gateway/internal/gateway/core/ports"
	"github.com/sportshop/checkout-gateway/internal/gateway/infra/httpx/middlewares"
	"github.com/sportshop/checkout-gateway/internal/pkg/metrics"
)

func NewRouter(handler *Handler, sessions ports.SessionStore) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Logout works even when the session is already gone.
		r.Post("/logout", handler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middlewares.Session(sessions))
			r.Post("/checkout", handler.Checkout)
			r.Get("/payment/vnpay/return", handler.PaymentReturn)
			r.Get("/checkout/outcomes/{orderID}", handler.Outcome)
		})
	})

	// Wrap the whole router so every request gets a server span.
	return otelhttp.NewHandler(r, "checkout-gateway")
}
