package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	domain "github.com/heritage-semijoias/api/internal/domain"
	"github.com/heritage-semijoias/api/internal/services"
)

type stubCartService struct {
	createFunc func(ctx context.Context) (domain.Cart, error)
	getFunc    func(ctx context.Context, cartID string) (domain.Cart, error)
	addFunc    func(ctx context.Context, cmd services.AddCartItemCommand) (domain.Cart, error)
	setQtyFunc func(ctx context.Context, cmd services.SetCartQuantityCommand) (domain.Cart, error)
	removeFunc func(ctx context.Context, cartID, itemID string) (domain.Cart, error)
	clearFunc  func(ctx context.Context, cartID string) (domain.Cart, error)
}

func (s *stubCartService) CreateCart(ctx context.Context) (domain.Cart, error) {
	return s.createFunc(ctx)
}

func (s *stubCartService) GetCart(ctx context.Context, cartID string) (domain.Cart, error) {
	return s.getFunc(ctx, cartID)
}

func (s *stubCartService) AddItem(ctx context.Context, cmd services.AddCartItemCommand) (domain.Cart, error) {
	return s.addFunc(ctx, cmd)
}

func (s *stubCartService) SetQuantity(ctx context.Context, cmd services.SetCartQuantityCommand) (domain.Cart, error) {
	return s.setQtyFunc(ctx, cmd)
}

func (s *stubCartService) RemoveItem(ctx context.Context, cartID, itemID string) (domain.Cart, error) {
	return s.removeFunc(ctx, cartID, itemID)
}

func (s *stubCartService) ClearCart(ctx context.Context, cartID string) (domain.Cart, error) {
	return s.clearFunc(ctx, cartID)
}

func newCartRouter(service services.CartService) chi.Router {
	router := chi.NewRouter()
	router.Route("/cart", NewCartHandlers(service).Routes)
	return router
}

func TestCartHandlersCreateCart(t *testing.T) {
	now := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	service := &stubCartService{
		createFunc: func(ctx context.Context) (domain.Cart, error) {
			return domain.Cart{ID: "01JK3W9XG3", Items: []domain.CartItem{}, CreatedAt: now, UpdatedAt: now}, nil
		},
	}
	router := newCartRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/cart", nil))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}
	var resp cartPayload
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "01JK3W9XG3" {
		t.Fatalf("expected cart id, got %q", resp.ID)
	}
	if resp.Count != 0 || resp.Subtotal != 0 {
		t.Fatalf("expected empty cart, got %+v", resp)
	}
}

func TestCartHandlersGetCartDerivedFields(t *testing.T) {
	service := &stubCartService{
		getFunc: func(ctx context.Context, cartID string) (domain.Cart, error) {
			if cartID != "cart-1" {
				t.Fatalf("unexpected cart id %q", cartID)
			}
			return domain.Cart{
				ID: "cart-1",
				Items: []domain.CartItem{
					{ID: "colar-lumi", Name: "Colar Lumi", Price: 12990, Qty: 2},
				},
			}, nil
		},
	}
	router := newCartRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/cart/cart-1", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp cartPayload
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Subtotal != 25980 {
		t.Fatalf("expected subtotal 25980, got %d", resp.Subtotal)
	}
	if resp.Count != 2 {
		t.Fatalf("expected count 2, got %d", resp.Count)
	}
	if resp.SubtotalDisplay == "" {
		t.Fatalf("expected formatted subtotal")
	}
}

func TestCartHandlersAddItemForwardsCommand(t *testing.T) {
	var captured services.AddCartItemCommand
	service := &stubCartService{
		addFunc: func(ctx context.Context, cmd services.AddCartItemCommand) (domain.Cart, error) {
			captured = cmd
			return domain.Cart{ID: cmd.CartID, Items: []domain.CartItem{cmd.Item}}, nil
		},
	}
	router := newCartRouter(service)

	body, _ := json.Marshal(addItemRequest{ID: "anel-aura", Name: "Anel Aura", Price: 9990, Qty: 2})
	req := httptest.NewRequest(http.MethodPost, "/cart/cart-1/items", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if captured.CartID != "cart-1" {
		t.Fatalf("expected cart id forwarded, got %q", captured.CartID)
	}
	if captured.Item.ID != "anel-aura" || captured.Item.Qty != 2 {
		t.Fatalf("unexpected item %+v", captured.Item)
	}
}

func TestCartHandlersAddItemRejectsBadJSON(t *testing.T) {
	service := &stubCartService{}
	router := newCartRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/cart/cart-1/items", bytes.NewReader([]byte("{")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestCartHandlersSetQuantityMissingItem(t *testing.T) {
	service := &stubCartService{
		setQtyFunc: func(ctx context.Context, cmd services.SetCartQuantityCommand) (domain.Cart, error) {
			return domain.Cart{}, services.ErrCartItemNotFound
		},
	}
	router := newCartRouter(service)

	body, _ := json.Marshal(setQuantityRequest{Qty: 3})
	req := httptest.NewRequest(http.MethodPut, "/cart/cart-1/items/ghost", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestCartHandlersClearCart(t *testing.T) {
	service := &stubCartService{
		clearFunc: func(ctx context.Context, cartID string) (domain.Cart, error) {
			return domain.Cart{ID: cartID, Items: []domain.CartItem{}}, nil
		},
	}
	router := newCartRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/cart/cart-1", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp cartPayload
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Fatalf("expected empty items")
	}
}

func TestCartHandlersServiceUnavailable(t *testing.T) {
	service := &stubCartService{
		getFunc: func(ctx context.Context, cartID string) (domain.Cart, error) {
			return domain.Cart{}, services.ErrCartUnavailable
		},
	}
	router := newCartRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/cart/cart-1", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rr.Code)
	}
}
