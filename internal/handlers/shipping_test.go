package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	domain "github.com/heritage-semijoias/api/internal/domain"
	"github.com/heritage-semijoias/api/internal/services"
	"github.com/heritage-semijoias/api/internal/shipping"
)

type stubQuoteService struct {
	quoteFunc func(ctx context.Context, cmd services.QuoteCommand) ([]domain.ShippingOption, error)
}

func (s *stubQuoteService) Quote(ctx context.Context, cmd services.QuoteCommand) ([]domain.ShippingOption, error) {
	return s.quoteFunc(ctx, cmd)
}

func newShippingRouter(service services.QuoteService) chi.Router {
	router := chi.NewRouter()
	NewShippingHandlers(service).Routes(router)
	return router
}

func quoteBody(t *testing.T, req quoteRequest) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	return bytes.NewReader(body)
}

func TestShippingHandlersPreflight(t *testing.T) {
	router := newShippingRouter(&stubQuoteService{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/shipping/quote", nil))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected permissive CORS header")
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("expected empty preflight body")
	}
}

func TestShippingHandlersRejectsNonPost(t *testing.T) {
	router := newShippingRouter(&stubQuoteService{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/shipping/quote", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

func TestShippingHandlersInvalidCEP(t *testing.T) {
	service := &stubQuoteService{
		quoteFunc: func(ctx context.Context, cmd services.QuoteCommand) ([]domain.ShippingOption, error) {
			return nil, services.ErrQuoteInvalidCEP
		},
	}
	router := newShippingRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/shipping/quote", quoteBody(t, quoteRequest{
		ToPostcode: "0605",
		Products:   []quoteProductItem{{Quantity: 1}},
	})))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] != "CEP inválido" {
		t.Fatalf("expected CEP error message, got %q", resp["error"])
	}
}

func TestShippingHandlersProductsRequired(t *testing.T) {
	service := &stubQuoteService{
		quoteFunc: func(ctx context.Context, cmd services.QuoteCommand) ([]domain.ShippingOption, error) {
			return nil, services.ErrQuoteProductsRequired
		},
	}
	router := newShippingRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/shipping/quote", quoteBody(t, quoteRequest{
		ToPostcode: "06053020",
	})))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] != "products obrigatório" {
		t.Fatalf("expected products error message, got %q", resp["error"])
	}
}

func TestShippingHandlersSuccessConvertsPricesToReais(t *testing.T) {
	var captured services.QuoteCommand
	service := &stubQuoteService{
		quoteFunc: func(ctx context.Context, cmd services.QuoteCommand) ([]domain.ShippingOption, error) {
			captured = cmd
			return []domain.ShippingOption{
				{ID: "2", Name: "SEDEX", Price: 1250, OriginalPrice: 1800, Deadline: "Até 2 dias úteis"},
				{ID: "1", Name: "PAC", Price: 1990, Deadline: "Até 6 dias úteis", PostingType: "agencia"},
			}, nil
		},
	}
	router := newShippingRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/shipping/quote", quoteBody(t, quoteRequest{
		ToPostcode:     "06053-020",
		Products:       []quoteProductItem{{Quantity: 2.7, Weight: 0.05}},
		InsuranceValue: 150,
	})))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if captured.InsuranceValue != 150 {
		t.Fatalf("expected insurance forwarded, got %v", captured.InsuranceValue)
	}
	if len(captured.Products) != 1 || captured.Products[0].Quantity != 2.7 {
		t.Fatalf("expected raw quantity 2.7 forwarded, got %+v", captured.Products)
	}

	var resp struct {
		Options []quoteOptionPayload `json:"options"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(resp.Options))
	}
	if resp.Options[0].Price != 12.5 {
		t.Fatalf("expected price 12.5, got %v", resp.Options[0].Price)
	}
	if resp.Options[0].OriginalPrice != 18 {
		t.Fatalf("expected original price 18, got %v", resp.Options[0].OriginalPrice)
	}
	if resp.Options[1].OriginalPrice != 0 {
		t.Fatalf("expected no original price, got %v", resp.Options[1].OriginalPrice)
	}
}

func TestShippingHandlersMirrorsUpstreamError(t *testing.T) {
	service := &stubQuoteService{
		quoteFunc: func(ctx context.Context, cmd services.QuoteCommand) ([]domain.ShippingOption, error) {
			return nil, &shipping.UpstreamError{
				StatusCode: 422,
				Body:       []byte(`{"error":"CEP de destino inválido"}`),
			}
		},
	}
	router := newShippingRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/shipping/quote", quoteBody(t, quoteRequest{
		ToPostcode: "99999999",
		Products:   []quoteProductItem{{Quantity: 1}},
	})))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected upstream status mirrored, got %d", rr.Code)
	}
	if rr.Body.String() != `{"error":"CEP de destino inválido"}` {
		t.Fatalf("expected upstream body mirrored, got %s", rr.Body.String())
	}
}

func TestShippingHandlersNotConfigured(t *testing.T) {
	service := &stubQuoteService{
		quoteFunc: func(ctx context.Context, cmd services.QuoteCommand) ([]domain.ShippingOption, error) {
			return nil, services.ErrQuoteNotConfigured
		},
	}
	router := newShippingRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/shipping/quote", quoteBody(t, quoteRequest{
		ToPostcode: "06053020",
		Products:   []quoteProductItem{{Quantity: 1}},
	})))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}

func TestShippingHandlersEmptyOptionsStillOK(t *testing.T) {
	service := &stubQuoteService{
		quoteFunc: func(ctx context.Context, cmd services.QuoteCommand) ([]domain.ShippingOption, error) {
			return []domain.ShippingOption{}, nil
		},
	}
	router := newShippingRouter(service)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/shipping/quote", quoteBody(t, quoteRequest{
		ToPostcode: "06053020",
		Products:   []quoteProductItem{{Quantity: 1}},
	})))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var resp struct {
		Options []quoteOptionPayload `json:"options"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Options) != 0 {
		t.Fatalf("expected empty options, got %d", len(resp.Options))
	}
}
