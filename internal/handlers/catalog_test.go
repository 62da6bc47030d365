package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	domain "github.com/heritage-semijoias/api/internal/domain"
	"github.com/heritage-semijoias/api/internal/services"
)

type stubCatalogService struct {
	listFunc        func(ctx context.Context, collection string) ([]domain.Product, error)
	getFunc         func(ctx context.Context, slug string) (domain.Product, error)
	collectionsFunc func(ctx context.Context) []string
}

func (s *stubCatalogService) ListProducts(ctx context.Context, collection string) ([]domain.Product, error) {
	return s.listFunc(ctx, collection)
}

func (s *stubCatalogService) GetProduct(ctx context.Context, slug string) (domain.Product, error) {
	return s.getFunc(ctx, slug)
}

func (s *stubCatalogService) Collections(ctx context.Context) []string {
	return s.collectionsFunc(ctx)
}

func newCatalogRouter(service services.CatalogService) chi.Router {
	router := chi.NewRouter()
	router.Route("/products", NewCatalogHandlers(service).Routes)
	return router
}

func TestCatalogHandlersListByCollection(t *testing.T) {
	service := &stubCatalogService{
		listFunc: func(ctx context.Context, collection string) ([]domain.Product, error) {
			if collection != "pratas" {
				t.Fatalf("unexpected collection %q", collection)
			}
			return []domain.Product{
				{Slug: "pulseira-prata", Name: "Pulseira Prata", Price: 15990, Collection: "pratas"},
			}, nil
		},
	}
	router := newCatalogRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products?collection=pratas", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp struct {
		Products []productPayload `json:"products"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(resp.Products))
	}
	if resp.Products[0].PriceDisplay == "" {
		t.Fatalf("expected formatted price")
	}
}

func TestCatalogHandlersListPaginates(t *testing.T) {
	catalog := make([]domain.Product, 0, 5)
	for _, slug := range []string{"a", "b", "c", "d", "e"} {
		catalog = append(catalog, domain.Product{Slug: slug, Name: slug, Price: 1000, Collection: "semijoias"})
	}
	service := &stubCatalogService{
		listFunc: func(ctx context.Context, collection string) ([]domain.Product, error) {
			return catalog, nil
		},
	}
	router := newCatalogRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products?page_size=2", nil))

	var first struct {
		Products      []productPayload `json:"products"`
		NextPageToken string           `json:"next_page_token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &first); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(first.Products) != 2 || first.Products[0].Slug != "a" {
		t.Fatalf("unexpected first page %+v", first.Products)
	}
	if first.NextPageToken == "" {
		t.Fatalf("expected continuation token")
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products?page_size=2&page_token="+first.NextPageToken, nil))

	var second struct {
		Products []productPayload `json:"products"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &second); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(second.Products) != 2 || second.Products[0].Slug != "c" {
		t.Fatalf("unexpected second page %+v", second.Products)
	}
}

func TestCatalogHandlersRejectsBadPageSize(t *testing.T) {
	service := &stubCatalogService{}
	router := newCatalogRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products?page_size=zero", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestCatalogHandlersGetProductNotFound(t *testing.T) {
	service := &stubCatalogService{
		getFunc: func(ctx context.Context, slug string) (domain.Product, error) {
			return domain.Product{}, services.ErrCatalogNotFound
		},
	}
	router := newCatalogRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/inexistente", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestCatalogHandlersCollections(t *testing.T) {
	service := &stubCatalogService{
		collectionsFunc: func(ctx context.Context) []string {
			return []string{"lancamentos", "semijoias", "pratas"}
		},
	}
	router := newCatalogRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/collections", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp struct {
		Collections []string `json:"collections"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Collections) != 3 {
		t.Fatalf("expected 3 collections, got %d", len(resp.Collections))
	}
}
