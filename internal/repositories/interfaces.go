package repositories

import (
	"context"

	domain "github.com/heritage-semijoias/api/internal/domain"
)

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// CartStore persists carts keyed by cart ID. Load returns a RepositoryError
// with IsNotFound when the cart is absent or the stored blob is unreadable;
// callers treat both as an empty cart rather than failing.
type CartStore interface {
	Load(ctx context.Context, cartID string) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}

// DraftStore persists identification-form drafts keyed by cart ID. The draft
// is an opaque blob; corrupt or missing data resolves to IsNotFound.
type DraftStore interface {
	LoadDraft(ctx context.Context, cartID string) (domain.IdentificationForm, error)
	SaveDraft(ctx context.Context, cartID string, form domain.IdentificationForm) error
}

// HealthRepository aggregates dependency probes for readiness endpoints.
type HealthRepository interface {
	Collect(ctx context.Context) (domain.SystemHealthReport, error)
}
