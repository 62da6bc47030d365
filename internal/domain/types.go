package domain

import (
	"time"
)

// Cart quantity bounds enforced on every mutation.
const (
	MinItemQuantity = 1
	MaxItemQuantity = 99
)

// CartItem is one line of a cart. Price is in centavos. ID is unique per
// product+variant; adding the same ID again merges quantities instead of
// appending a duplicate row.
type CartItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Price   int64  `json:"price"`
	Image   string `json:"image,omitempty"`
	Variant string `json:"variant,omitempty"`
	Qty     int    `json:"qty"`
}

// Cart holds the ordered line items for one shopper. Insertion order is
// preserved for display. Subtotal and Count are always derived, never stored
// as authoritative state.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Subtotal returns Σ price×qty over all items, in centavos.
func (c Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		if item.Qty <= 0 || item.Price <= 0 {
			continue
		}
		total += item.Price * int64(item.Qty)
	}
	return total
}

// Count returns the total number of units across all lines.
func (c Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		if item.Qty > 0 {
			count += item.Qty
		}
	}
	return count
}

// ClampQuantity forces q into the [MinItemQuantity, MaxItemQuantity] range.
func ClampQuantity(q int) int {
	if q < MinItemQuantity {
		return MinItemQuantity
	}
	if q > MaxItemQuantity {
		return MaxItemQuantity
	}
	return q
}

// PackageItem describes the physical shape of one cart line as sent to the
// carrier. Weight is in kilograms, dimensions in centimetres. Quantity may be
// fractional on the wire; the carrier client floors it when building the
// payload.
type PackageItem struct {
	Quantity float64 `json:"quantity"`
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	Width    float64 `json:"width"`
	Length   float64 `json:"length"`
}

// ShippingOption is one normalized carrier quote. Price and OriginalPrice are
// in centavos; OriginalPrice is zero unless the quote carries a real discount
// (original strictly greater than price).
type ShippingOption struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"original_price,omitempty"`
	Deadline      string `json:"deadline"`
	PostingType   string `json:"posting_type,omitempty"`
}

// CheckoutTotals is the derived pricing breakdown for a checkout snapshot.
// Never persisted; recomputed from cart + selection on every read.
type CheckoutTotals struct {
	Subtotal    int64 `json:"subtotal"`
	GiftWrapFee int64 `json:"gift_wrap_fee"`
	Shipping    int64 `json:"shipping"`
	Total       int64 `json:"total"`
}

// IdentificationForm carries the checkout identification step fields. The
// draft is persisted between sessions; validation happens on progression.
type IdentificationForm struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Document     string `json:"document"`
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Product is one catalog entry. The catalog is a static in-memory list;
// Collection groups products into the storefront's browsing sections.
type Product struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Details     string   `json:"details,omitempty"`
	Price       int64    `json:"price"`
	Image       string   `json:"image"`
	Images      []string `json:"images,omitempty"`
	Tag         string   `json:"tag,omitempty"`
	Collection  string   `json:"collection"`
}

const (
	// HealthStatusOK indicates all dependencies are healthy.
	HealthStatusOK = "ok"
	// HealthStatusDegraded indicates at least one dependency is degraded but service remains running.
	HealthStatusDegraded = "degraded"
	// HealthStatusError indicates the service or a critical dependency is unavailable.
	HealthStatusError = "error"
)

// SystemHealthCheck describes the outcome of an individual dependency probe.
type SystemHealthCheck struct {
	Status    string
	Detail    string
	Error     string
	Latency   time.Duration
	CheckedAt time.Time
}

// SystemHealthReport aggregates dependency status for health endpoints.
type SystemHealthReport struct {
	Status      string
	Checks      map[string]SystemHealthCheck
	Version     string
	GeneratedAt time.Time
}
