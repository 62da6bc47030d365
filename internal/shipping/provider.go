package shipping

import (
	"context"
	"fmt"

	"github.com/heritage-semijoias/api/internal/domain"
)

// Logger defines the logging contract for carrier client operations.
type Logger func(ctx context.Context, event string, fields map[string]any)

// RateRequest captures the payload required to fetch shipping quotes for a
// destination postal code and a package manifest.
type RateRequest struct {
	// ToCEP is the destination postal code, digits only.
	ToCEP string
	// FromCEP optionally overrides the configured origin postal code.
	FromCEP string
	// Services optionally overrides the configured carrier service codes.
	Services string
	// InsuranceValue is the declared value in BRL. Insurance is requested
	// only when the value is greater than zero.
	InsuranceValue float64
	Products       []domain.PackageItem
}

// Provider defines the contract for carrier rate adapters to implement.
type Provider interface {
	Quote(ctx context.Context, req RateRequest) ([]domain.ShippingOption, error)
}

// UpstreamError carries a non-2xx carrier response so callers can mirror the
// upstream status code and body.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("shipping: upstream returned status %d", e.StatusCode)
}
