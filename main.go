package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appOrder "github.com/mercadinho-dev/gostore/internal/application/order"
	domainCustomer "github.com/mercadinho-dev/gostore/internal/domain/customer"
	domainOrder "github.com/mercadinho-dev/gostore/internal/domain/order"
	domainProduct "github.com/mercadinho-dev/gostore/internal/domain/product"
	"github.com/mercadinho-dev/gostore/internal/infrastructure/cached"
	"github.com/mercadinho-dev/gostore/internal/infrastructure/memory"
	"github.com/mercadinho-dev/gostore/internal/infrastructure/observability/oteltrace"
	"github.com/mercadinho-dev/gostore/internal/infrastructure/observability/prometrics"
	"github.com/mercadinho-dev/gostore/internal/infrastructure/observability/telemetry"
	"github.com/mercadinho-dev/gostore/internal/infrastructure/observability/zaplogger"
	"github.com/mercadinho-dev/gostore/internal/infrastructure/postgres"
	"github.com/mercadinho-dev/gostore/internal/observability"
	"github.com/mercadinho-dev/gostore/internal/pkg/cache"
	httppresentation "github.com/mercadinho-dev/gostore/internal/presentation/http"
)

const customerCacheTTL = 5 * time.Minute

func main() {
	serviceName := getenvDefault("SERVICE_NAME", "gostore")
	env := getenvDefault("ENV", "dev")
	addr := getenvDefault("ADDR", ":8080")

	logger := zaplogger.MustNew(
		observability.F("service", serviceName),
		observability.F("env", env),
	)
	defer func() {
		if s, ok := logger.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}
	}()

	registry := prometrics.New("")
	tel := telemetry.New(
		oteltrace.New(serviceName),
		logger,
		buildCounters(registry),
		buildHistograms(registry),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	customers, products, orders, cleanup, err := buildStores(ctx, logger)
	if err != nil {
		logger.Error("store_init_failed", observability.F("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		customers = cached.NewCustomerRepository(
			customers,
			cache.NewRedisCache(redisAddr, serviceName),
			customerCacheTTL,
			logger,
		)
		logger.Info("customer_cache_enabled", observability.F("addr", redisAddr))
	}

	useCase := appOrder.NewCreateOrderUseCase(customers, products, orders, tel)
	handler := httppresentation.NewHandler(useCase, tel)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		logger.Info("http_server_start", observability.F("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", observability.F("error", err.Error()))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", observability.F("error", err.Error()))
	} else {
		logger.Info("http_server_stopped")
	}
}

// buildStores selects postgres when DATABASE_URL is set, otherwise falls
// back to seeded in-memory stores.
func buildStores(ctx context.Context, logger observability.Logger) (
	domainCustomer.Repository,
	domainProduct.Repository,
	domainOrder.Repository,
	func(),
	error,
) {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		pool, err := pgxpool.New(ctx, databaseURL)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		logger.Info("store_backend", observability.F("backend", "postgres"))
		return postgres.NewCustomerRepository(pool),
			postgres.NewProductRepository(pool),
			postgres.NewOrderRepository(pool),
			pool.Close,
			nil
	}

	customers := memory.NewCustomerRepository()
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	seedDemoData(customers, products)

	logger.Info("store_backend", observability.F("backend", "memory"))
	return customers, products, orders, func() {}, nil
}

func seedDemoData(customers *memory.CustomerRepository, products *memory.ProductRepository) {
	if c, err := domainCustomer.New("c1", "Demo Customer", "demo@gostore.dev"); err == nil {
		customers.Seed(c)
	}
	demo := []struct {
		id, name string
		price    float64
		quantity int
	}{
		{"p1", "Keyboard", 10, 5},
		{"p2", "Mouse", 25.5, 20},
		{"p3", "Monitor", 180, 3},
	}
	for _, d := range demo {
		if p, err := domainProduct.New(d.id, d.name, d.price, d.quantity); err == nil {
			products.Seed(p)
		}
	}
}

func buildCounters(registry prometrics.Registry) map[observability.MetricKey]observability.Counter {
	return map[observability.MetricKey]observability.Counter{
		observability.MUsecaseRequests: registry.Counter(
			string(observability.MUsecaseRequests),
			"Total number of use case invocations.",
			"use_case", "outcome",
		),
		observability.MExternalRequests: registry.Counter(
			string(observability.MExternalRequests),
			"Total number of collaborator calls.",
			"peer", "endpoint", "outcome",
		),
		observability.MHTTPRequests: registry.Counter(
			string(observability.MHTTPRequests),
			"Total number of HTTP requests.",
			"method", "route", "status",
		),
	}
}

func buildHistograms(registry prometrics.Registry) map[observability.MetricKey]observability.Histogram {
	return map[observability.MetricKey]observability.Histogram{
		observability.MUsecaseDuration: registry.Histogram(
			string(observability.MUsecaseDuration),
			"Duration of use case execution in seconds.",
			nil,
			"use_case",
		),
		observability.MExternalRequestDuration: registry.Histogram(
			string(observability.MExternalRequestDuration),
			"Duration of collaborator calls in seconds.",
			nil,
			"peer", "endpoint",
		),
		observability.MHTTPRequestDuration: registry.Histogram(
			string(observability.MHTTPRequestDuration),
			"Duration of HTTP requests in seconds.",
			nil,
			"method", "route",
		),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
