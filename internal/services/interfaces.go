package services

import (
	"context"
	"errors"

	domain "github.com/heritage-semijoias/api/internal/domain"
	repositories "github.com/heritage-semijoias/api/internal/repositories"
)

// Logger matches the lightweight structured logging callback shared by all
// services. Implementations must be safe for concurrent use.
type Logger func(ctx context.Context, event string, fields map[string]any)

// CartService owns cart state transitions. Every mutation is applied as a
// single load, transform, save transition and persisted before returning.
type CartService interface {
	CreateCart(ctx context.Context) (domain.Cart, error)
	GetCart(ctx context.Context, cartID string) (domain.Cart, error)
	AddItem(ctx context.Context, cmd AddCartItemCommand) (domain.Cart, error)
	SetQuantity(ctx context.Context, cmd SetCartQuantityCommand) (domain.Cart, error)
	RemoveItem(ctx context.Context, cartID, itemID string) (domain.Cart, error)
	ClearCart(ctx context.Context, cartID string) (domain.Cart, error)
}

// AddCartItemCommand adds one line to a cart. Adding an ID that already
// exists merges quantities instead of appending a duplicate row.
type AddCartItemCommand struct {
	CartID string
	Item   domain.CartItem
}

// SetCartQuantityCommand replaces the quantity on an existing line.
type SetCartQuantityCommand struct {
	CartID   string
	ItemID   string
	Quantity int
}

// CheckoutService derives pricing totals and manages the identification step.
type CheckoutService interface {
	Totals(ctx context.Context, cmd CheckoutTotalsCommand) (domain.CheckoutTotals, error)
	IdentificationDraft(ctx context.Context, cartID string) (domain.IdentificationForm, error)
	SaveIdentificationDraft(ctx context.Context, cartID string, form domain.IdentificationForm) (domain.IdentificationForm, error)
	ValidateIdentification(form domain.IdentificationForm) IdentificationReport
	ProceedToIdentification(ctx context.Context, cmd CheckoutTotalsCommand) (domain.CheckoutTotals, error)
	ProceedToPayment(ctx context.Context, cartID string) (IdentificationReport, error)
}

// CheckoutTotalsCommand is a pricing snapshot request. SelectedOption is the
// shipping quote the shopper picked, nil when none is selected yet.
type CheckoutTotalsCommand struct {
	CartID         string
	GiftWrap       bool
	SelectedOption *domain.ShippingOption
}

// IdentificationReport carries per-field validation messages for the
// identification form. Valid is true when Fields is empty.
type IdentificationReport struct {
	Valid  bool              `json:"valid"`
	Fields map[string]string `json:"fields,omitempty"`
}

// CatalogService exposes the read-only product catalog.
type CatalogService interface {
	ListProducts(ctx context.Context, collection string) ([]domain.Product, error)
	GetProduct(ctx context.Context, slug string) (domain.Product, error)
	Collections(ctx context.Context) []string
}

// QuoteService fetches normalized shipping quotes for a destination and
// package manifest. Identical in-flight requests are coalesced.
type QuoteService interface {
	Quote(ctx context.Context, cmd QuoteCommand) ([]domain.ShippingOption, error)
}

// QuoteCommand describes one rate request. Services overrides the default
// carrier service codes when non-empty. InsuranceValue is in reais.
type QuoteCommand struct {
	ToCEP          string
	Products       []domain.PackageItem
	InsuranceValue float64
	Services       string
}

func isRepoNotFound(err error) bool {
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.IsNotFound()
	}
	return false
}
