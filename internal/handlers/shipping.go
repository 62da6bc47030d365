package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	domain "github.com/heritage-semijoias/api/internal/domain"
	"github.com/heritage-semijoias/api/internal/services"
	"github.com/heritage-semijoias/api/internal/shipping"
)

const maxQuoteBodySize = 64 * 1024

// ShippingHandlers serves the storefront quote endpoint. The wire contract
// matches the original storefront function: prices travel as reais floats and
// errors as a bare {"error": "..."} object, with permissive CORS for the
// browser caller.
type ShippingHandlers struct {
	quotes services.QuoteService
}

// NewShippingHandlers constructs handlers over the quote service.
func NewShippingHandlers(quotes services.QuoteService) *ShippingHandlers {
	return &ShippingHandlers{quotes: quotes}
}

// Routes wires /shipping/quote onto the provided router.
func (h *ShippingHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Options("/shipping/quote", h.preflight)
	r.Post("/shipping/quote", h.quote)
}

type quoteRequest struct {
	ToPostcode     string             `json:"to_postcode"`
	Products       []quoteProductItem `json:"products"`
	InsuranceValue float64            `json:"insurance_value"`
	Services       string             `json:"services"`
}

type quoteProductItem struct {
	Quantity float64 `json:"quantity"`
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	Width    float64 `json:"width"`
	Length   float64 `json:"length"`
}

type quoteOptionPayload struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Deadline      string  `json:"deadline"`
	PostingType   string  `json:"posting_type,omitempty"`
}

func (h *ShippingHandlers) preflight(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShippingHandlers) quote(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	var req quoteRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxQuoteBodySize))
	if err != nil || json.Unmarshal(body, &req) != nil {
		writeQuoteError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	items := make([]domain.PackageItem, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, domain.PackageItem{
			Quantity: p.Quantity,
			Weight:   p.Weight,
			Height:   p.Height,
			Width:    p.Width,
			Length:   p.Length,
		})
	}

	options, err := h.quotes.Quote(r.Context(), services.QuoteCommand{
		ToCEP:          req.ToPostcode,
		Products:       items,
		InsuranceValue: req.InsuranceValue,
		Services:       req.Services,
	})
	if err != nil {
		h.writeQuoteFailure(w, err)
		return
	}

	payload := make([]quoteOptionPayload, 0, len(options))
	for _, opt := range options {
		payload = append(payload, quoteOptionPayload{
			ID:            opt.ID,
			Name:          opt.Name,
			Price:         toReais(opt.Price),
			OriginalPrice: toReais(opt.OriginalPrice),
			Deadline:      opt.Deadline,
			PostingType:   opt.PostingType,
		})
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"options": payload})
}

func (h *ShippingHandlers) writeQuoteFailure(w http.ResponseWriter, err error) {
	var upstream *shipping.UpstreamError
	switch {
	case errors.Is(err, services.ErrQuoteInvalidCEP):
		writeQuoteError(w, http.StatusBadRequest, "CEP inválido")
	case errors.Is(err, services.ErrQuoteProductsRequired):
		writeQuoteError(w, http.StatusBadRequest, "products obrigatório")
	case errors.Is(err, services.ErrQuoteInvalidInput):
		writeQuoteError(w, http.StatusBadRequest, "requisição inválida")
	case errors.Is(err, services.ErrQuoteNotConfigured):
		writeQuoteError(w, http.StatusInternalServerError, "frete não configurado")
	case errors.As(err, &upstream):
		// Mirror the carrier's status and body untouched.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(upstream.StatusCode)
		_, _ = w.Write(upstream.Body)
	case errors.Is(err, shipping.ErrMalformedResponse):
		writeQuoteError(w, http.StatusInternalServerError, "resposta inválida da transportadora")
	default:
		writeQuoteError(w, http.StatusInternalServerError, "erro ao calcular frete")
	}
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeQuoteError(w http.ResponseWriter, status int, message string) {
	writeJSONResponse(w, status, map[string]string{"error": message})
}

func toReais(centavos int64) float64 {
	return float64(centavos) / 100
}

func toCentavos(reais float64) int64 {
	return int64(math.Round(reais * 100))
}
