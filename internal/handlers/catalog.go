package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	domain "github.com/heritage-semijoias/api/internal/domain"
	"github.com/heritage-semijoias/api/internal/platform/httpx"
	"github.com/heritage-semijoias/api/internal/platform/pagination"
	"github.com/heritage-semijoias/api/internal/services"
)

// CatalogHandlers exposes the read-only product endpoints.
type CatalogHandlers struct {
	catalog services.CatalogService
}

// NewCatalogHandlers constructs handlers over the catalog service.
func NewCatalogHandlers(catalog services.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalog: catalog}
}

// Routes wires the /products endpoints onto the provided router.
func (h *CatalogHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listProducts)
	r.Get("/collections", h.listCollections)
	r.Get("/{slug}", h.getProduct)
}

type productPayload struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Details      string   `json:"details,omitempty"`
	Price        int64    `json:"price"`
	PriceDisplay string   `json:"price_display"`
	Image        string   `json:"image"`
	Images       []string `json:"images,omitempty"`
	Tag          string   `json:"tag,omitempty"`
	Collection   string   `json:"collection"`
}

func (h *CatalogHandlers) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params, err := pagination.FromRequest(r)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_pagination", err.Error(), http.StatusBadRequest))
		return
	}
	products, err := h.catalog.ListProducts(ctx, r.URL.Query().Get("collection"))
	if err != nil {
		h.writeCatalogError(ctx, w, err)
		return
	}
	from, to, nextToken := params.Slice(len(products))
	payload := make([]productPayload, 0, to-from)
	for _, product := range products[from:to] {
		payload = append(payload, buildProductPayload(product))
	}
	body := map[string]any{"products": payload}
	if nextToken != "" {
		body["next_page_token"] = nextToken
	}
	writeJSONResponse(w, http.StatusOK, body)
}

func (h *CatalogHandlers) listCollections(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"collections": h.catalog.Collections(r.Context()),
	})
}

func (h *CatalogHandlers) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	product, err := h.catalog.GetProduct(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		h.writeCatalogError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildProductPayload(product))
}

func (h *CatalogHandlers) writeCatalogError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCatalogInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrCatalogNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("catalog_error", "catalog operation failed", http.StatusInternalServerError))
	}
}

func buildProductPayload(product domain.Product) productPayload {
	return productPayload{
		Slug:         product.Slug,
		Name:         product.Name,
		Description:  product.Description,
		Details:      product.Details,
		Price:        product.Price,
		PriceDisplay: domain.FormatBRL(product.Price),
		Image:        product.Image,
		Images:       product.Images,
		Tag:          product.Tag,
		Collection:   product.Collection,
	}
}
