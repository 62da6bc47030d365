// Package pagination parses page-size and opaque page-token parameters for
// list endpoints and encodes continuation tokens.
package pagination

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize applies when the request omits page_size.
	DefaultPageSize = 24
	// MaxPageSize caps client-supplied page sizes.
	MaxPageSize = 100
)

var (
	// ErrInvalidPageSize indicates page_size was not a positive integer.
	ErrInvalidPageSize = errors.New("pagination: page_size must be a positive integer")
	// ErrInvalidToken indicates the page token could not be decoded.
	ErrInvalidToken = errors.New("pagination: invalid page token")
)

// Params carries the resolved pagination window for one request.
type Params struct {
	PageSize int
	Offset   int
}

// FromRequest parses page_size and page_token from the request query.
func FromRequest(r *http.Request) (Params, error) {
	params := Params{PageSize: DefaultPageSize}

	if raw := strings.TrimSpace(r.URL.Query().Get("page_size")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return Params{}, ErrInvalidPageSize
		}
		if size > MaxPageSize {
			size = MaxPageSize
		}
		params.PageSize = size
	}

	if token := strings.TrimSpace(r.URL.Query().Get("page_token")); token != "" {
		offset, err := DecodeToken(token)
		if err != nil {
			return Params{}, err
		}
		params.Offset = offset
	}

	return params, nil
}

// Slice applies the window to a list length and returns the [from, to) bounds
// plus the continuation token for the next page, empty when exhausted.
func (p Params) Slice(total int) (int, int, string) {
	from := p.Offset
	if from > total {
		from = total
	}
	to := from + p.PageSize
	if to >= total {
		return from, total, ""
	}
	return from, to, EncodeToken(to)
}
