package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	domain "github.com/heritage-semijoias/api/internal/domain"
	"github.com/heritage-semijoias/api/internal/platform/httpx"
	"github.com/heritage-semijoias/api/internal/services"
)

// CheckoutHandlers exposes totals computation, the identification draft and
// the step progression gates.
type CheckoutHandlers struct {
	checkout services.CheckoutService
}

// NewCheckoutHandlers constructs handlers over the checkout service.
func NewCheckoutHandlers(checkout services.CheckoutService) *CheckoutHandlers {
	return &CheckoutHandlers{checkout: checkout}
}

// Routes wires the /checkout endpoints onto the provided router.
func (h *CheckoutHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/{cartID}/totals", h.totals)
	r.Get("/{cartID}/identification", h.getDraft)
	r.Put("/{cartID}/identification", h.saveDraft)
	r.Post("/{cartID}/identification", h.proceedToIdentification)
	r.Post("/{cartID}/payment", h.proceedToPayment)
}

type totalsRequest struct {
	GiftWrap       bool                   `json:"gift_wrap"`
	SelectedOption *shippingOptionRequest `json:"selected_option"`
}

type shippingOptionRequest struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type totalsPayload struct {
	Subtotal     int64  `json:"subtotal"`
	GiftWrapFee  int64  `json:"gift_wrap_fee"`
	Shipping     int64  `json:"shipping"`
	Total        int64  `json:"total"`
	TotalDisplay string `json:"total_display"`
}

func (h *CheckoutHandlers) totals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req totalsRequest
	if err := decodeJSONBody(r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	totals, err := h.checkout.Totals(ctx, buildTotalsCommand(chi.URLParam(r, "cartID"), req))
	if err != nil {
		h.writeCheckoutError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildTotalsPayload(totals))
}

func (h *CheckoutHandlers) getDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form, err := h.checkout.IdentificationDraft(ctx, chi.URLParam(r, "cartID"))
	if err != nil {
		h.writeCheckoutError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, form)
}

func (h *CheckoutHandlers) saveDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var form domain.IdentificationForm
	if err := decodeJSONBody(r, &form); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	saved, err := h.checkout.SaveIdentificationDraft(ctx, chi.URLParam(r, "cartID"), form)
	if err != nil {
		h.writeCheckoutError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, saved)
}

func (h *CheckoutHandlers) proceedToIdentification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req totalsRequest
	if err := decodeJSONBody(r, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}
	totals, err := h.checkout.ProceedToIdentification(ctx, buildTotalsCommand(chi.URLParam(r, "cartID"), req))
	if err != nil {
		h.writeCheckoutError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, buildTotalsPayload(totals))
}

func (h *CheckoutHandlers) proceedToPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, err := h.checkout.ProceedToPayment(ctx, chi.URLParam(r, "cartID"))
	if err != nil {
		if errors.Is(err, services.ErrCheckoutIdentificationInvalid) {
			writeJSONResponse(w, http.StatusUnprocessableEntity, report)
			return
		}
		h.writeCheckoutError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, report)
}

func (h *CheckoutHandlers) writeCheckoutError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCheckoutInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrCheckoutShippingRequired):
		httpx.WriteError(ctx, w, httpx.NewError("shipping_required", "select a shipping option before identification", http.StatusUnprocessableEntity))
	case errors.Is(err, services.ErrCheckoutUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("checkout_service_unavailable", "checkout service is unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("checkout_error", "checkout operation failed", http.StatusInternalServerError))
	}
}

func buildTotalsCommand(cartID string, req totalsRequest) services.CheckoutTotalsCommand {
	cmd := services.CheckoutTotalsCommand{
		CartID:   cartID,
		GiftWrap: req.GiftWrap,
	}
	if req.SelectedOption != nil {
		cmd.SelectedOption = &domain.ShippingOption{
			ID:    req.SelectedOption.ID,
			Name:  req.SelectedOption.Name,
			Price: toCentavos(req.SelectedOption.Price),
		}
	}
	return cmd
}

func buildTotalsPayload(totals domain.CheckoutTotals) totalsPayload {
	return totalsPayload{
		Subtotal:     totals.Subtotal,
		GiftWrapFee:  totals.GiftWrapFee,
		Shipping:     totals.Shipping,
		Total:        totals.Total,
		TotalDisplay: domain.FormatBRL(totals.Total),
	}
}
