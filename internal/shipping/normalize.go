package shipping

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/heritage-semijoias/api/internal/domain"
)

// ErrMalformedResponse indicates the carrier body could not be parsed as JSON.
var ErrMalformedResponse = errors.New("shipping: malformed carrier response")

// Alias chains tried in priority order when reading carrier responses. The
// upstream schema differs between sandbox and production, so every field is
// resolved through an ordered list of known key names.
var (
	discountPriceAliases = []string{"price_with_discount", "discounted_price", "price_discounted"}
	plainPriceAliases    = []string{"final_price", "total", "price", "value"}
	originalPriceAliases = []string{"original_price", "list_price", "price_without_discount", "price_original"}
	deadlineAliases      = []string{"delivery_time", "deadline", "time"}
	deadlineRawAliases   = []string{"deadline", "delivery_time", "time"}
	idAliases            = []string{"id", "service_id", "service", "code", "name"}
	nameAliases          = []string{"name", "service_name"}
	postingAliases       = []string{"posting_type", "posting", "dropoff"}
)

// NormalizeOptions parses a carrier response body and returns the option list
// sorted ascending by price. The list may live under "services", "options", or
// be the top-level array itself; no recognisable list yields an empty result.
func NormalizeOptions(body []byte) ([]domain.ShippingOption, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	raw := optionList(payload)
	options := make([]domain.ShippingOption, 0, len(raw))
	for _, entry := range raw {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		option, ok := normalizeOption(fields)
		if !ok {
			continue
		}
		options = append(options, option)
	}

	// Stable: equal prices keep their first-seen order.
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Price < options[j].Price
	})
	return options, nil
}

func optionList(payload any) []any {
	switch v := payload.(type) {
	case map[string]any:
		for _, key := range []string{"services", "options"} {
			if list, ok := v[key].([]any); ok {
				return list
			}
		}
	case []any:
		return v
	}
	return nil
}

func normalizeOption(fields map[string]any) (domain.ShippingOption, bool) {
	price, fromDiscount := extractPrice(fields)
	if price <= 0 {
		return domain.ShippingOption{}, false
	}

	return domain.ShippingOption{
		ID:            extractID(fields),
		Name:          extractName(fields),
		Price:         price,
		OriginalPrice: extractOriginalPrice(fields, price, fromDiscount),
		Deadline:      extractDeadline(fields),
		PostingType:   firstString(fields, postingAliases),
	}, true
}

// extractPrice returns the price in centavos and whether a discount alias
// supplied it. Discounted fields win over the plain price chain.
func extractPrice(fields map[string]any) (int64, bool) {
	if v, ok := firstNumber(fields, discountPriceAliases); ok {
		return toCentavos(v), true
	}
	if v, ok := firstNumber(fields, plainPriceAliases); ok {
		return toCentavos(v), false
	}
	return 0, false
}

// extractOriginalPrice resolves the pre-discount price. When the price came
// from a discount alias and no dedicated original field exists, the plain
// price chain serves as the original. The result is kept only when strictly
// greater than the computed price, so a reversed pair never shows as a
// discount.
func extractOriginalPrice(fields map[string]any, price int64, fromDiscount bool) int64 {
	v, ok := firstNumber(fields, originalPriceAliases)
	if !ok && fromDiscount {
		v, ok = firstNumber(fields, plainPriceAliases)
	}
	if !ok {
		return 0
	}
	original := toCentavos(v)
	if original <= price {
		return 0
	}
	return original
}

func extractDeadline(fields map[string]any) string {
	if days, ok := firstNumber(fields, deadlineAliases); ok && days > 0 {
		return fmt.Sprintf("Até %s dias úteis", strconv.FormatFloat(days, 'f', -1, 64))
	}
	return firstString(fields, deadlineRawAliases)
}

func extractID(fields map[string]any) string {
	if id := firstString(fields, idAliases); id != "" {
		return id
	}
	return ""
}

func extractName(fields map[string]any) string {
	if name := firstString(fields, nameAliases); name != "" {
		return name
	}
	return "Frete"
}

// firstNumber returns the first alias whose value parses as a finite number.
func firstNumber(fields map[string]any, aliases []string) (float64, bool) {
	for _, key := range aliases {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if n, ok := asNumber(value); ok {
			return n, true
		}
	}
	return 0, false
}

// firstString returns the first alias with a non-empty string representation.
func firstString(fields map[string]any, aliases []string) string {
	for _, key := range aliases {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if s := asString(value); s != "" {
			return s
		}
	}
	return ""
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return n, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func toCentavos(reais float64) int64 {
	return int64(math.Round(reais * 100))
}
