package services

import (
	"context"
	"errors"
	"strings"

	domain "github.com/heritage-semijoias/api/internal/domain"
)

var (
	// ErrCatalogInvalidInput indicates the caller supplied malformed parameters.
	ErrCatalogInvalidInput = errors.New("catalog service: invalid input")
	// ErrCatalogNotFound indicates the product does not exist.
	ErrCatalogNotFound = errors.New("catalog service: product not found")
)

// CatalogServiceDeps wires the catalog service dependencies. Products defaults
// to the built-in storefront catalog.
type CatalogServiceDeps struct {
	Products []domain.Product
	Logger   Logger
}

type catalogService struct {
	products []domain.Product
	bySlug   map[string]domain.Product
	log      Logger
}

// NewCatalogService returns a read-only CatalogService over a static product list.
func NewCatalogService(deps CatalogServiceDeps) (CatalogService, error) {
	products := deps.Products
	if products == nil {
		products = domain.Products
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	bySlug := make(map[string]domain.Product, len(products))
	for _, product := range products {
		if product.Slug == "" {
			return nil, ErrCatalogInvalidInput
		}
		bySlug[product.Slug] = product
	}
	return &catalogService{products: products, bySlug: bySlug, log: logger}, nil
}

func (s *catalogService) ListProducts(ctx context.Context, collection string) ([]domain.Product, error) {
	collection = strings.ToLower(strings.TrimSpace(collection))
	if collection == "" {
		out := make([]domain.Product, len(s.products))
		copy(out, s.products)
		return out, nil
	}
	out := []domain.Product{}
	for _, product := range s.products {
		if product.Collection == collection {
			out = append(out, product)
		}
	}
	return out, nil
}

func (s *catalogService) GetProduct(ctx context.Context, slug string) (domain.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Product{}, ErrCatalogInvalidInput
	}
	product, ok := s.bySlug[slug]
	if !ok {
		return domain.Product{}, ErrCatalogNotFound
	}
	return product, nil
}

// Collections returns the distinct collection names in catalog order.
func (s *catalogService) Collections(ctx context.Context) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, product := range s.products {
		if product.Collection == "" || seen[product.Collection] {
			continue
		}
		seen[product.Collection] = true
		out = append(out, product.Collection)
	}
	return out
}
