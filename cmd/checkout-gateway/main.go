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

	"github.com/sportshop/checkout-gateway/internal/checkout"
	reconsqlite "github.com/sportshop/checkout-gateway/internal/checkout/reconlog/sqlite"
	"github.com/sportshop/checkout-gateway/internal/events"
	"github.com/sportshop/checkout-gateway/internal/gateway/core/ports"
	"github.com/sportshop/checkout-gateway/internal/gateway/infra/adapters/rest"
	"github.com/sportshop/checkout-gateway/internal/gateway/infra/adapters/service"
	"github.com/sportshop/checkout-gateway/internal/gateway/infra/httpx"
	"github.com/sportshop/checkout-gateway/internal/pendingstore"
	"github.com/sportshop/checkout-gateway/internal/pkg/cache"
	"github.com/sportshop/checkout-gateway/internal/pkg/metrics"
	"github.com/sportshop/checkout-gateway/internal/pkg/telemetry"
)

func main() {
	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "checkout-gateway"))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisCache := cache.NewRedisCache(redisAddr, "checkout")
	pending := pendingstore.New(redisCache)
	sessions := service.NewRedisSessionStore(redisCache)

	auditPath := getEnv("RECON_LOG_PATH", "./data/reconciliation.db")
	audit, err := reconsqlite.Open(auditPath)
	if err != nil {
		slog.Error("failed to open reconciliation log", "path", auditPath, "error", err)
		os.Exit(1)
	}
	defer audit.Close()

	publisher := events.NewPublisher(os.Getenv("KAFKA_BROKERS"), getEnv("KAFKA_TOPIC", "checkout.events"))
	defer publisher.Close()

	m := metrics.NewCheckoutMetrics()

	cart, orders, gateway := buildBackends()

	flow := checkout.NewFlow(cart, orders, gateway, pending, publisher, m)
	reconciler := checkout.NewReconciler(orders, cart, pending, audit, publisher, m)

	handler := httpx.NewHandler(flow, reconciler, audit, sessions, m)
	router := httpx.NewRouter(handler, sessions)

	addr := ":" + getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("checkout gateway running", "addr", addr, "kafka_enabled", publisher.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}
}

// buildBackends wires the commerce backend and VNPay integration clients.
// With BACKEND_FAKE=1 the in-memory fakes are used instead, so the gateway
// runs end to end on a laptop with nothing but Redis.
func buildBackends() (ports.CartService, ports.OrderService, ports.PaymentGateway) {
	if os.Getenv("BACKEND_FAKE") == "1" {
		slog.Warn("using in-memory backend fakes; not for production")
		return service.NewFakeCartService(), service.NewFakeOrderService(), service.NewFakePaymentGateway()
	}

	timeout := 15 * time.Second
	commerce := rest.NewClient(getEnv("COMMERCE_API_URL", "http://localhost:5000/api"), timeout)
	payment := rest.NewClient(getEnv("PAYMENT_API_URL", "http://localhost:5000/api"), timeout)

	return rest.NewCartClient(commerce), rest.NewOrderClient(commerce), rest.NewVNPayClient(payment)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
