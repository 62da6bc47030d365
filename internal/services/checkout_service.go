package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	domain "github.com/heritage-semijoias/api/internal/domain"
	"github.com/heritage-semijoias/api/internal/platform/brdoc"
	repositories "github.com/heritage-semijoias/api/internal/repositories"
)

var (
	// ErrCheckoutInvalidInput indicates the caller supplied malformed parameters.
	ErrCheckoutInvalidInput = errors.New("checkout service: invalid input")
	// ErrCheckoutShippingRequired indicates progression was attempted before a
	// shipping option was selected.
	ErrCheckoutShippingRequired = errors.New("checkout service: shipping option required")
	// ErrCheckoutIdentificationInvalid indicates the identification form did
	// not pass validation.
	ErrCheckoutIdentificationInvalid = errors.New("checkout service: identification invalid")
	// ErrCheckoutUnavailable indicates a backing store failed.
	ErrCheckoutUnavailable = errors.New("checkout service: unavailable")
)

var (
	errCheckoutCartsRequired  = errors.New("checkout service: cart store dependency is required")
	errCheckoutDraftsRequired = errors.New("checkout service: draft store dependency is required")
	errCheckoutClockRequired  = errors.New("checkout service: clock dependency is required")
)

// CheckoutServiceDeps wires the checkout service dependencies. GiftWrapFee is
// in centavos and applied only when the shopper opts in.
type CheckoutServiceDeps struct {
	Carts       repositories.CartStore
	Drafts      repositories.DraftStore
	GiftWrapFee int64
	Clock       func() time.Time
	Logger      Logger
	Sanitizer   *bluemonday.Policy
}

type checkoutService struct {
	carts       repositories.CartStore
	drafts      repositories.DraftStore
	giftWrapFee int64
	now         func() time.Time
	log         Logger
	sanitizer   *bluemonday.Policy
}

// NewCheckoutService validates dependencies and returns a CheckoutService.
func NewCheckoutService(deps CheckoutServiceDeps) (CheckoutService, error) {
	if deps.Carts == nil {
		return nil, errCheckoutCartsRequired
	}
	if deps.Drafts == nil {
		return nil, errCheckoutDraftsRequired
	}
	if deps.Clock == nil {
		return nil, errCheckoutClockRequired
	}
	if deps.GiftWrapFee < 0 {
		return nil, ErrCheckoutInvalidInput
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	sanitizer := deps.Sanitizer
	if sanitizer == nil {
		sanitizer = bluemonday.StrictPolicy()
	}
	return &checkoutService{
		carts:       deps.Carts,
		drafts:      deps.Drafts,
		giftWrapFee: deps.GiftWrapFee,
		now:         func() time.Time { return deps.Clock().UTC() },
		log:         logger,
		sanitizer:   sanitizer,
	}, nil
}

func (s *checkoutService) Totals(ctx context.Context, cmd CheckoutTotalsCommand) (domain.CheckoutTotals, error) {
	cmd.CartID = strings.TrimSpace(cmd.CartID)
	if cmd.CartID == "" {
		return domain.CheckoutTotals{}, ErrCheckoutInvalidInput
	}
	cart, err := s.loadCart(ctx, cmd.CartID)
	if err != nil {
		return domain.CheckoutTotals{}, err
	}
	return s.compute(cart, cmd), nil
}

// compute derives the breakdown from the snapshot alone. Nothing here is
// cached or read back from storage.
func (s *checkoutService) compute(cart domain.Cart, cmd CheckoutTotalsCommand) domain.CheckoutTotals {
	totals := domain.CheckoutTotals{Subtotal: cart.Subtotal()}
	if cmd.GiftWrap {
		totals.GiftWrapFee = s.giftWrapFee
	}
	if cmd.SelectedOption != nil {
		totals.Shipping = cmd.SelectedOption.Price
	}
	totals.Total = totals.Subtotal + totals.GiftWrapFee + totals.Shipping
	return totals
}

func (s *checkoutService) IdentificationDraft(ctx context.Context, cartID string) (domain.IdentificationForm, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return domain.IdentificationForm{}, ErrCheckoutInvalidInput
	}
	form, err := s.drafts.LoadDraft(ctx, cartID)
	if err != nil {
		if isRepoNotFound(err) {
			// Missing and corrupt drafts both start the form over.
			return domain.IdentificationForm{}, nil
		}
		s.log(ctx, "checkout.draft_load_failed", map[string]any{"cart_id": cartID, "error": err.Error()})
		return domain.IdentificationForm{}, ErrCheckoutUnavailable
	}
	return form, nil
}

func (s *checkoutService) SaveIdentificationDraft(ctx context.Context, cartID string, form domain.IdentificationForm) (domain.IdentificationForm, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return domain.IdentificationForm{}, ErrCheckoutInvalidInput
	}
	sanitized := s.sanitizeForm(form)
	if err := s.drafts.SaveDraft(ctx, cartID, sanitized); err != nil {
		s.log(ctx, "checkout.draft_save_failed", map[string]any{"cart_id": cartID, "error": err.Error()})
		return domain.IdentificationForm{}, ErrCheckoutUnavailable
	}
	s.log(ctx, "checkout.draft_saved", map[string]any{"cart_id": cartID})
	return sanitized, nil
}

func (s *checkoutService) ValidateIdentification(form domain.IdentificationForm) IdentificationReport {
	fields := map[string]string{}
	if strings.TrimSpace(form.Name) == "" {
		fields["name"] = "Informe seu nome completo"
	}
	if !brdoc.IsEmail(form.Email) {
		fields["email"] = "E-mail inválido"
	}
	if !brdoc.IsPhone(form.Phone) {
		fields["phone"] = "Telefone inválido"
	}
	if !brdoc.IsCPF(form.Document) {
		fields["document"] = "CPF inválido"
	}
	if !brdoc.IsCEP(form.CEP) {
		fields["cep"] = "CEP inválido"
	}
	if strings.TrimSpace(form.Street) == "" {
		fields["street"] = "Informe a rua"
	}
	if strings.TrimSpace(form.Number) == "" {
		fields["number"] = "Informe o número"
	}
	if strings.TrimSpace(form.Neighborhood) == "" {
		fields["neighborhood"] = "Informe o bairro"
	}
	if strings.TrimSpace(form.City) == "" {
		fields["city"] = "Informe a cidade"
	}
	if !brdoc.IsUF(form.State) {
		fields["state"] = "UF inválida"
	}
	if len(fields) == 0 {
		return IdentificationReport{Valid: true}
	}
	return IdentificationReport{Fields: fields}
}

func (s *checkoutService) ProceedToIdentification(ctx context.Context, cmd CheckoutTotalsCommand) (domain.CheckoutTotals, error) {
	if cmd.SelectedOption == nil {
		return domain.CheckoutTotals{}, ErrCheckoutShippingRequired
	}
	totals, err := s.Totals(ctx, cmd)
	if err != nil {
		return domain.CheckoutTotals{}, err
	}
	s.log(ctx, "checkout.identification_started", map[string]any{
		"cart_id":  cmd.CartID,
		"shipping": cmd.SelectedOption.ID,
		"total":    totals.Total,
	})
	return totals, nil
}

func (s *checkoutService) ProceedToPayment(ctx context.Context, cartID string) (IdentificationReport, error) {
	form, err := s.IdentificationDraft(ctx, cartID)
	if err != nil {
		return IdentificationReport{}, err
	}
	report := s.ValidateIdentification(form)
	if !report.Valid {
		return report, ErrCheckoutIdentificationInvalid
	}
	s.log(ctx, "checkout.payment_started", map[string]any{"cart_id": cartID})
	return report, nil
}

func (s *checkoutService) loadCart(ctx context.Context, cartID string) (domain.Cart, error) {
	cart, err := s.carts.Load(ctx, cartID)
	if err != nil {
		if isRepoNotFound(err) {
			return domain.Cart{ID: cartID}, nil
		}
		s.log(ctx, "checkout.cart_load_failed", map[string]any{"cart_id": cartID, "error": err.Error()})
		return domain.Cart{}, ErrCheckoutUnavailable
	}
	return cart, nil
}

func (s *checkoutService) sanitizeForm(form domain.IdentificationForm) domain.IdentificationForm {
	clean := func(v string) string {
		return strings.TrimSpace(s.sanitizer.Sanitize(v))
	}
	form.Name = clean(form.Name)
	form.Email = clean(form.Email)
	form.Phone = clean(form.Phone)
	form.Document = clean(form.Document)
	form.CEP = clean(form.CEP)
	form.Street = clean(form.Street)
	form.Number = clean(form.Number)
	form.Complement = clean(form.Complement)
	form.Neighborhood = clean(form.Neighborhood)
	form.City = clean(form.City)
	form.State = clean(form.State)
	return form
}
