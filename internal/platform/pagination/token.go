package pagination

import (
	"encoding/base64"
	"strconv"
)

// EncodeToken wraps a list offset in an opaque continuation token.
func EncodeToken(offset int) string {
	if offset < 0 {
		offset = 0
	}
	return base64.RawURLEncoding.EncodeToString([]byte("o:" + strconv.Itoa(offset)))
}

// DecodeToken unwraps a continuation token produced by EncodeToken.
func DecodeToken(token string) (int, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalidToken
	}
	s := string(raw)
	if len(s) < 3 || s[:2] != "o:" {
		return 0, ErrInvalidToken
	}
	offset, err := strconv.Atoi(s[2:])
	if err != nil || offset < 0 {
		return 0, ErrInvalidToken
	}
	return offset, nil
}
