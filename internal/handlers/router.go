package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/heritage-semijoias/api/internal/platform/httpx"
)

// RouteRegistrar registers a set of routes against the provided router.
type RouteRegistrar func(r chi.Router)

type routerConfig struct {
	basePath    string
	middlewares []func(http.Handler) http.Handler
	health      *HealthHandlers

	catalog  RouteRegistrar
	cart     RouteRegistrar
	checkout RouteRegistrar
	shipping RouteRegistrar
}

// Option customises the router configuration before construction.
type Option func(*routerConfig)

const (
	defaultAPIPrefix  = "/api/v1"
	defaultTimeout    = 60 * time.Second
	errorNotFoundCode = "route_not_found"
)

// NewRouter constructs the chi router with shared middleware and the expected
// route groups. The shipping quote endpoint is additionally mounted at the
// root so the storefront's original path keeps working.
func NewRouter(opts ...Option) chi.Router {
	cfg := routerConfig{
		basePath: defaultAPIPrefix,
		middlewares: []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Timeout(defaultTimeout),
		},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	r := chi.NewRouter()

	if cfg.health == nil {
		cfg.health = NewHealthHandlers(HealthHandlersDeps{})
	}

	for _, mw := range cfg.middlewares {
		if mw != nil {
			r.Use(mw)
		}
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError(errorNotFoundCode, fmt.Sprintf("no route for %s", req.URL.Path), http.StatusNotFound))
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError("method_not_allowed", fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path), http.StatusMethodNotAllowed))
	})

	r.Get("/healthz", cfg.health.Healthz)
	r.Get("/readyz", cfg.health.Readyz)

	mount := func(api chi.Router, path string, registrar RouteRegistrar) {
		if registrar == nil {
			return
		}
		api.Route(path, func(group chi.Router) {
			registrar(group)
		})
	}

	if cfg.shipping != nil {
		// Storefront parity mount; preflight and method handling live in the
		// registrar itself.
		cfg.shipping(r)
	}

	r.Route(cfg.basePath, func(api chi.Router) {
		mount(api, "/products", cfg.catalog)
		mount(api, "/cart", cfg.cart)
		mount(api, "/checkout", cfg.checkout)
		if cfg.shipping != nil {
			cfg.shipping(api)
		}
	})

	return r
}

// WithMiddlewares appends additional global middleware to the router.
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(cfg *routerConfig) {
		cfg.middlewares = append(cfg.middlewares, mw...)
	}
}

// WithBasePath overrides the default /api/v1 prefix.
func WithBasePath(path string) Option {
	return func(cfg *routerConfig) {
		if path != "" {
			cfg.basePath = path
		}
	}
}

// WithHealthHandlers overrides the default health handlers.
func WithHealthHandlers(h *HealthHandlers) Option {
	return func(cfg *routerConfig) {
		cfg.health = h
	}
}

// WithCatalogRoutes mounts the product catalog endpoints.
func WithCatalogRoutes(registrar RouteRegistrar) Option {
	return func(cfg *routerConfig) {
		cfg.catalog = registrar
	}
}

// WithCartRoutes mounts the cart endpoints.
func WithCartRoutes(registrar RouteRegistrar) Option {
	return func(cfg *routerConfig) {
		cfg.cart = registrar
	}
}

// WithCheckoutRoutes mounts the checkout endpoints.
func WithCheckoutRoutes(registrar RouteRegistrar) Option {
	return func(cfg *routerConfig) {
		cfg.checkout = registrar
	}
}

// WithShippingRoutes mounts the shipping quote endpoint, both at the root and
// under the API prefix.
func WithShippingRoutes(registrar RouteRegistrar) Option {
	return func(cfg *routerConfig) {
		cfg.shipping = registrar
	}
}

func writeJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
