package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	domain "github.com/heritage-semijoias/api/internal/domain"
	"github.com/heritage-semijoias/api/internal/platform/brdoc"
	"github.com/heritage-semijoias/api/internal/shipping"
)

var (
	// ErrQuoteInvalidInput indicates the caller supplied malformed parameters.
	ErrQuoteInvalidInput = errors.New("quote service: invalid input")
	// ErrQuoteInvalidCEP indicates the destination postal code is not eight digits.
	ErrQuoteInvalidCEP = fmt.Errorf("%w: cep must have 8 digits", ErrQuoteInvalidInput)
	// ErrQuoteProductsRequired indicates an empty package manifest.
	ErrQuoteProductsRequired = fmt.Errorf("%w: products required", ErrQuoteInvalidInput)
	// ErrQuoteNotConfigured indicates no carrier credential was configured.
	ErrQuoteNotConfigured = errors.New("quote service: carrier not configured")
	// ErrQuoteUnavailable indicates an unexpected carrier failure.
	ErrQuoteUnavailable = errors.New("quote service: unavailable")
)

// QuoteServiceDeps wires the quote service dependencies. Provider may be nil
// when no carrier credential is configured; quotes then fail per request
// instead of at boot.
type QuoteServiceDeps struct {
	Provider shipping.Provider
	Clock    func() time.Time
	Logger   Logger
}

type quoteService struct {
	provider shipping.Provider
	now      func() time.Time
	log      Logger
	group    singleflight.Group
}

// NewQuoteService returns a QuoteService backed by the given carrier provider.
func NewQuoteService(deps QuoteServiceDeps) (QuoteService, error) {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &quoteService{
		provider: deps.Provider,
		now:      func() time.Time { return clock().UTC() },
		log:      logger,
	}, nil
}

func (s *quoteService) Quote(ctx context.Context, cmd QuoteCommand) ([]domain.ShippingOption, error) {
	// Validation happens before any network call.
	if !brdoc.IsCEP(cmd.ToCEP) {
		return nil, ErrQuoteInvalidCEP
	}
	if len(cmd.Products) == 0 {
		return nil, ErrQuoteProductsRequired
	}
	if s.provider == nil {
		s.log(ctx, "quote.not_configured", map[string]any{"to_cep": brdoc.OnlyDigits(cmd.ToCEP)})
		return nil, ErrQuoteNotConfigured
	}

	started := s.now()
	result, err, shared := s.group.Do(coalesceKey(cmd), func() (any, error) {
		// The flight outlives the leader; followers must not inherit its
		// cancellation.
		return s.provider.Quote(context.WithoutCancel(ctx), shipping.RateRequest{
			ToCEP:          brdoc.OnlyDigits(cmd.ToCEP),
			Services:       cmd.Services,
			InsuranceValue: cmd.InsuranceValue,
			Products:       cmd.Products,
		})
	})
	if err != nil {
		return nil, s.translateQuoteError(ctx, err)
	}

	options, ok := result.([]domain.ShippingOption)
	if !ok {
		return nil, ErrQuoteUnavailable
	}
	s.log(ctx, "quote.success", map[string]any{
		"options":    len(options),
		"coalesced":  shared,
		"elapsed_ms": s.now().Sub(started).Milliseconds(),
	})
	return options, nil
}

// coalesceKey identifies identical in-flight requests so concurrent callers
// share one carrier round trip.
func coalesceKey(cmd QuoteCommand) string {
	manifest, err := json.Marshal(cmd.Products)
	if err != nil {
		manifest = []byte(fmt.Sprintf("%d", len(cmd.Products)))
	}
	return fmt.Sprintf("%s|%s|%.2f|%s", brdoc.OnlyDigits(cmd.ToCEP), cmd.Services, cmd.InsuranceValue, manifest)
}

func (s *quoteService) translateQuoteError(ctx context.Context, err error) error {
	var upstream *shipping.UpstreamError
	if errors.As(err, &upstream) {
		s.log(ctx, "quote.upstream_error", map[string]any{"status": upstream.StatusCode})
		return err
	}
	if errors.Is(err, shipping.ErrMalformedResponse) {
		s.log(ctx, "quote.malformed_response", nil)
		return err
	}
	s.log(ctx, "quote.failed", map[string]any{"error": err.Error()})
	return fmt.Errorf("%w: %v", ErrQuoteUnavailable, err)
}
