// Package app contains the application setup for the product service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/productcatalog/internal/config"
	"github.com/abgdnv/productcatalog/internal/product/repository"
	"github.com/abgdnv/productcatalog/internal/product/service"
	"github.com/abgdnv/productcatalog/internal/product/store"
	"github.com/abgdnv/productcatalog/internal/product/transport/rest"
	"github.com/abgdnv/productcatalog/internal/product/validation"
	"github.com/abgdnv/productcatalog/pkg/metrics"
	"github.com/abgdnv/productcatalog/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ServiceName labels logs, metrics and traces.
const ServiceName = "product"

type Dependencies struct {
	ProductService service.ProductService
	Validator      *validation.Validator
	Logger         *slog.Logger
	// Registry is nil when metrics are disabled.
	Registry *prometheus.Registry
}

// SetupDependencies wires the file-backed store into the repository and service.
func SetupDependencies(productStore store.ProductStore, logger *slog.Logger, cfg *config.Config) *Dependencies {
	deps := &Dependencies{
		ProductService: service.NewService(repository.New(productStore)),
		Validator:      validation.New(),
		Logger:         logger,
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		deps.Registry = reg
	}
	return deps
}

// SetupHttpHandler initializes the routes and middleware of the product service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	var extra []func(http.Handler) http.Handler
	var m *metrics.Metrics
	if deps.Registry != nil {
		m = metrics.NewMetrics(deps.Registry)
		extra = append(extra, m.Middleware(ServiceName, metrics.ChiRoutePattern))
	}

	mux := server.NewChiRouter(deps.Logger, extra...)
	wireRoutes(mux, deps, cfg)
	if m != nil {
		mux.Handle(cfg.Metrics.Path, m.Handler())
	}

	if cfg.Telemetry.Enabled {
		return otelhttp.NewHandler(mux, ServiceName)
	}
	return mux
}

// wireRoutes sets up the HTTP routes for the product service.
func wireRoutes(mux *chi.Mux, deps *Dependencies, cfg *config.Config) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Validator, deps.Logger, cfg.HTTPServer.MaxBodyBytes)
	productHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the product service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps, cfg)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
