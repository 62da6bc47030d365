package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/heritage-semijoias/api/internal/domain"
)

const (
	defaultCalculatorURL = "https://api.superfrete.com/api/v0/calculator"
	defaultServiceCodes  = "1,2,17,3,31"
	defaultUserAgent     = "HeritageSemijoias (contato@heritagesemijoias.com.br)"

	defaultWeightKg = 0.03
	defaultHeightCm = 2
	defaultWidthCm  = 11
	defaultLengthCm = 16

	minWeightKg    = 0.001
	minDimensionCm = 1
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SuperFreteConfig configures the SuperFrete rate client.
type SuperFreteConfig struct {
	Token     string
	BaseURL   string
	FromCEP   string
	Services  string
	UserAgent string
	Timeout   time.Duration
	HTTPDoer  httpDoer
	Logger    Logger
}

// SuperFreteClient implements Provider against the SuperFrete calculator API.
type SuperFreteClient struct {
	token     string
	baseURL   string
	fromCEP   string
	services  string
	userAgent string
	doer      httpDoer
	logger    Logger
}

// NewSuperFreteClient constructs a SuperFrete client using the given configuration.
func NewSuperFreteClient(cfg SuperFreteConfig) (*SuperFreteClient, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("superfrete: api token is required")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultCalculatorURL
	}

	services := strings.TrimSpace(cfg.Services)
	if services == "" {
		services = defaultServiceCodes
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	doer := cfg.HTTPDoer
	if doer == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		doer = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	return &SuperFreteClient{
		token:     token,
		baseURL:   baseURL,
		fromCEP:   onlyDigits(cfg.FromCEP),
		services:  services,
		userAgent: userAgent,
		doer:      doer,
		logger:    logger,
	}, nil
}

type postalCode struct {
	PostalCode string `json:"postal_code"`
}

type rateOptions struct {
	OwnHand           bool    `json:"own_hand"`
	Receipt           bool    `json:"receipt"`
	InsuranceValue    float64 `json:"insurance_value"`
	UseInsuranceValue bool    `json:"use_insurance_value"`
}

type rateProduct struct {
	Quantity int     `json:"quantity"`
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	Width    float64 `json:"width"`
	Length   float64 `json:"length"`
}

type ratePayload struct {
	From     postalCode    `json:"from"`
	To       postalCode    `json:"to"`
	Services string        `json:"services"`
	Options  rateOptions   `json:"options"`
	Products []rateProduct `json:"products"`
}

// Quote fetches carrier rates for the request and returns the normalised,
// price-ascending option list.
func (c *SuperFreteClient) Quote(ctx context.Context, req RateRequest) ([]domain.ShippingOption, error) {
	if c == nil {
		return nil, errors.New("superfrete: client is nil")
	}

	payload := c.buildPayload(req)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("superfrete: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("superfrete: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("superfrete: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("superfrete: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger(ctx, "shipping.quote.upstream_error", map[string]any{
			"status": resp.StatusCode,
		})
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: respBody}
	}

	options, err := NormalizeOptions(respBody)
	if err != nil {
		return nil, err
	}

	c.logger(ctx, "shipping.quote.success", map[string]any{
		"to_cep":  req.ToCEP,
		"options": len(options),
	})
	return options, nil
}

func (c *SuperFreteClient) buildPayload(req RateRequest) ratePayload {
	fromCEP := onlyDigits(req.FromCEP)
	if fromCEP == "" {
		fromCEP = c.fromCEP
	}

	services := strings.TrimSpace(req.Services)
	if services == "" {
		services = c.services
	}

	insurance := req.InsuranceValue
	if insurance < 0 || math.IsNaN(insurance) || math.IsInf(insurance, 0) {
		insurance = 0
	}

	products := make([]rateProduct, 0, len(req.Products))
	for _, p := range req.Products {
		products = append(products, rateProduct{
			Quantity: clampQuantity(p.Quantity),
			Weight:   clampWithDefault(p.Weight, defaultWeightKg, minWeightKg),
			Height:   clampWithDefault(p.Height, defaultHeightCm, minDimensionCm),
			Width:    clampWithDefault(p.Width, defaultWidthCm, minDimensionCm),
			Length:   clampWithDefault(p.Length, defaultLengthCm, minDimensionCm),
		})
	}

	return ratePayload{
		From:     postalCode{PostalCode: fromCEP},
		To:       postalCode{PostalCode: onlyDigits(req.ToCEP)},
		Services: services,
		Options: rateOptions{
			OwnHand:           false,
			Receipt:           false,
			InsuranceValue:    insurance,
			UseInsuranceValue: insurance > 0,
		},
		Products: products,
	}
}

func clampQuantity(q float64) int {
	if math.IsNaN(q) || q < 1 {
		return 1
	}
	return int(math.Floor(q))
}

// clampWithDefault reads a non-positive or non-finite measurement as
// unspecified and substitutes the jewelry default before applying the
// carrier minimum. An explicit zero is treated the same as an absent field.
func clampWithDefault(v, def, min float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		v = def
	}
	if v < min {
		return min
	}
	return v
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
