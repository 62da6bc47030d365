package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/heritage-semijoias/api/internal/platform/config"
	pfirestore "github.com/heritage-semijoias/api/internal/platform/firestore"
	"github.com/heritage-semijoias/api/internal/platform/observability"
	"github.com/heritage-semijoias/api/internal/repositories"
	filestore "github.com/heritage-semijoias/api/internal/repositories/file"
	fsstore "github.com/heritage-semijoias/api/internal/repositories/firestore"
	memstore "github.com/heritage-semijoias/api/internal/repositories/memory"
	redisstore "github.com/heritage-semijoias/api/internal/repositories/redis"
	"github.com/heritage-semijoias/api/internal/services"
	"github.com/heritage-semijoias/api/internal/shipping"
)

// Stores bundles the persistence adapters selected from configuration. Carts
// and Drafts are always backed by the same adapter.
type Stores struct {
	Carts  repositories.CartStore
	Drafts repositories.DraftStore
}

// Services bundles the service-layer contracts that handlers rely upon.
type Services struct {
	Cart     services.CartService
	Checkout services.CheckoutService
	Catalog  services.CatalogService
	Quotes   services.QuoteService
}

// Container wires stores, services and supporting infrastructure for runtime use.
type Container struct {
	Config   config.Config
	Logger   *zap.Logger
	Stores   Stores
	Services Services
	Health   repositories.HealthRepository

	closers []func(context.Context) error
}

// NewContainer assembles the runtime dependencies from configuration.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Container{Config: cfg, Logger: logger}
	eventLog := observability.EventLogger(logger)

	stores, ping, err := c.buildStores(cfg)
	if err != nil {
		return nil, err
	}
	c.Stores = stores

	provider, err := buildShippingProvider(cfg, eventLog)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		logger.Warn("shipping provider not configured; quotes will fail per request")
	}

	svc, err := buildServices(stores, provider, cfg, eventLog)
	if err != nil {
		return nil, err
	}
	c.Services = svc

	health, err := buildHealthRepository(ping, provider)
	if err != nil {
		return nil, err
	}
	c.Health = health

	return c, nil
}

// Close releases store clients in reverse construction order.
func (c *Container) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Container) buildStores(cfg config.Config) (Stores, func(context.Context) error, error) {
	switch cfg.Cart.Store {
	case config.CartStoreMemory:
		store := memstore.NewStore()
		return Stores{Carts: store, Drafts: store}, nil, nil

	case config.CartStoreFile:
		store, err := filestore.NewStore(cfg.Cart.FilePath)
		if err != nil {
			return Stores{}, nil, fmt.Errorf("open cart file store: %w", err)
		}
		return Stores{Carts: store, Drafts: store}, nil, nil

	case config.CartStoreFirestore:
		provider := pfirestore.NewProvider(cfg.Firestore)
		c.closers = append(c.closers, provider.Close)
		store, err := fsstore.NewCartStore(provider)
		if err != nil {
			return Stores{}, nil, fmt.Errorf("build firestore cart store: %w", err)
		}
		ping := func(ctx context.Context) error {
			_, err := provider.Client(ctx)
			return err
		}
		return Stores{Carts: store, Drafts: store}, ping, nil

	case config.CartStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		c.closers = append(c.closers, func(context.Context) error { return client.Close() })
		store, err := redisstore.NewStore(client, cfg.Cart.TTL)
		if err != nil {
			return Stores{}, nil, fmt.Errorf("build redis cart store: %w", err)
		}
		return Stores{Carts: store, Drafts: store}, store.Ping, nil

	default:
		return Stores{}, nil, fmt.Errorf("unknown cart store %q", cfg.Cart.Store)
	}
}

func buildShippingProvider(cfg config.Config, eventLog func(context.Context, string, map[string]any)) (shipping.Provider, error) {
	if cfg.Shipping.APIToken == "" {
		// Boot succeeds without a credential; the quote path reports the
		// missing configuration per request.
		return nil, nil
	}
	client, err := shipping.NewSuperFreteClient(shipping.SuperFreteConfig{
		Token:    cfg.Shipping.APIToken,
		BaseURL:  cfg.Shipping.APIURL,
		FromCEP:  cfg.Shipping.FromCEP,
		Services: cfg.Shipping.Services,
		Timeout:  cfg.Shipping.Timeout,
		Logger:   shipping.Logger(eventLog),
	})
	if err != nil {
		return nil, fmt.Errorf("build shipping client: %w", err)
	}
	return client, nil
}

func buildServices(stores Stores, provider shipping.Provider, cfg config.Config, eventLog func(context.Context, string, map[string]any)) (Services, error) {
	var svc Services

	cartSvc, err := services.NewCartService(services.CartServiceDeps{
		Store:  stores.Carts,
		Clock:  time.Now,
		Logger: eventLog,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build cart service: %w", err)
	}
	svc.Cart = cartSvc

	checkoutSvc, err := services.NewCheckoutService(services.CheckoutServiceDeps{
		Carts:       stores.Carts,
		Drafts:      stores.Drafts,
		GiftWrapFee: cfg.Checkout.GiftWrapFee,
		Clock:       time.Now,
		Logger:      eventLog,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build checkout service: %w", err)
	}
	svc.Checkout = checkoutSvc

	catalogSvc, err := services.NewCatalogService(services.CatalogServiceDeps{Logger: eventLog})
	if err != nil {
		return Services{}, fmt.Errorf("build catalog service: %w", err)
	}
	svc.Catalog = catalogSvc

	quoteSvc, err := services.NewQuoteService(services.QuoteServiceDeps{
		Provider: provider,
		Clock:    time.Now,
		Logger:   eventLog,
	})
	if err != nil {
		return Services{}, fmt.Errorf("build quote service: %w", err)
	}
	svc.Quotes = quoteSvc

	return svc, nil
}

func buildHealthRepository(ping func(context.Context) error, provider shipping.Provider) (repositories.HealthRepository, error) {
	checks := []repositories.DependencyCheck{
		{
			Name: "cart-store",
			Check: func(ctx context.Context) error {
				if ping == nil {
					return nil
				}
				return ping(ctx)
			},
		},
		{
			Name: "shipping",
			Check: func(context.Context) error {
				if provider == nil {
					return errors.New("carrier credential not configured")
				}
				return nil
			},
		},
	}
	return repositories.NewDependencyHealthRepository(checks)
}
