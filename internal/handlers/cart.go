package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	domain "github.com/heritage-semijoias/api/internal/domain"
	"github.com/heritage-semijoias/api/internal/platform/httpx"
	"github.com/heritage-semijoias/api/internal/services"
)

const maxCartBodySize = 16 * 1024

// CartHandlers exposes the cart endpoints. Carts are keyed by an opaque cart
// ID minted on create; the storefront stores it client side.
type CartHandlers struct {
	carts services.CartService
}

// NewCartHandlers constructs handlers over the cart service.
func NewCartHandlers(carts services.CartService) *CartHandlers {
	return &CartHandlers{carts: carts}
}

// Routes wires the /cart endpoints onto the provided router.
func (h *CartHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.createCart)
	r.Get("/{cartID}", h.getCart)
	r.Post("/{cartID}/items", h.addItem)
	r.Put("/{cartID}/items/{itemID}", h.setQuantity)
	r.Delete("/{cartID}/items/{itemID}", h.removeItem)
	r.Delete("/{cartID}", h.clearCart)
}

type cartItemPayload struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"price_display"`
	Image        string `json:"image,omitempty"`
	Variant      string `json:"variant,omitempty"`
	Qty          int    `json:"qty"`
}

type cartPayload struct {
	ID              string            `json:"id"`
	Items           []cartItemPayload `json:"items"`
	Count           int               `json:"count"`
	Subtotal        int64             `json:"subtotal"`
	SubtotalDisplay string            `json:"subtotal_display"`
	UpdatedAt       string            `json:"updated_at,omitempty"`
}

type addItemRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Price   int64  `json:"price"`
	Image   string `json:"image"`
	Variant string `json:"variant"`
	Qty     int    `json:"qty"`
}

type setQuantityRequest struct {
	Qty int `json:"qty"`
}

func (h *CartHandlers) createCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cart, err := h.carts.CreateCart(ctx)
	if err != nil {
		h.writeCartError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, buildCartPayload(cart))
}

func (h *CartHandlers) getCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cart, err := h.carts.GetCart(ctx, chi.URLParam(r, "cartID"))
	if err != nil {
		h.writeCartError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildCartPayload(cart))
}

func (h *CartHandlers) addItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req addItemRequest
	if err := decodeJSONBody(r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	cart, err := h.carts.AddItem(ctx, services.AddCartItemCommand{
		CartID: chi.URLParam(r, "cartID"),
		Item: domain.CartItem{
			ID:      req.ID,
			Name:    req.Name,
			Price:   req.Price,
			Image:   req.Image,
			Variant: req.Variant,
			Qty:     req.Qty,
		},
	})
	if err != nil {
		h.writeCartError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildCartPayload(cart))
}

func (h *CartHandlers) setQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req setQuantityRequest
	if err := decodeJSONBody(r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	cart, err := h.carts.SetQuantity(ctx, services.SetCartQuantityCommand{
		CartID:   chi.URLParam(r, "cartID"),
		ItemID:   chi.URLParam(r, "itemID"),
		Quantity: req.Qty,
	})
	if err != nil {
		h.writeCartError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildCartPayload(cart))
}

func (h *CartHandlers) removeItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cart, err := h.carts.RemoveItem(ctx, chi.URLParam(r, "cartID"), chi.URLParam(r, "itemID"))
	if err != nil {
		h.writeCartError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildCartPayload(cart))
}

func (h *CartHandlers) clearCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cart, err := h.carts.ClearCart(ctx, chi.URLParam(r, "cartID"))
	if err != nil {
		h.writeCartError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildCartPayload(cart))
}

func (h *CartHandlers) writeCartError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCartInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrCartItemNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("cart_item_not_found", "item not found in cart", http.StatusNotFound))
	case errors.Is(err, services.ErrCartUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("cart_service_unavailable", "cart service is unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("cart_error", "cart operation failed", http.StatusInternalServerError))
	}
}

func buildCartPayload(cart domain.Cart) cartPayload {
	items := make([]cartItemPayload, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemPayload{
			ID:           item.ID,
			Name:         item.Name,
			Price:        item.Price,
			PriceDisplay: domain.FormatBRL(item.Price),
			Image:        item.Image,
			Variant:      item.Variant,
			Qty:          item.Qty,
		})
	}
	payload := cartPayload{
		ID:              strings.TrimSpace(cart.ID),
		Items:           items,
		Count:           cart.Count(),
		Subtotal:        cart.Subtotal(),
		SubtotalDisplay: domain.FormatBRL(cart.Subtotal()),
	}
	if !cart.UpdatedAt.IsZero() {
		payload.UpdatedAt = cart.UpdatedAt.UTC().Format(http.TimeFormat)
	}
	return payload
}

func decodeJSONBody(r *http.Request, dst any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxCartBodySize))
	if err := dec.Decode(dst); err != nil {
		return errors.New("request body must be valid JSON")
	}
	return nil
}
