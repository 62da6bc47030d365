// Package brdoc validates the Brazilian identification fields collected during
// checkout: CPF, CEP, phone numbers, e-mail addresses and UF codes. All
// functions are pure and never touch I/O.
package brdoc

import (
	"strings"
)

const (
	cpfLength = 11
	cepLength = 8
	minPhone  = 10
)

// OnlyDigits strips every non-digit rune from the input.
func OnlyDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsEmail reports whether the value has the local@domain.tld shape used by the
// storefront. Intentionally permissive beyond the basic structure.
func IsEmail(value string) bool {
	s := strings.TrimSpace(value)
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if local == "" || domain == "" {
		return false
	}
	dot := strings.LastIndexByte(domain, '.')
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	return !strings.ContainsAny(s, " \t\r\n")
}

// IsPhone reports whether the value carries at least an area code plus number
// (ten digits) after stripping formatting.
func IsPhone(value string) bool {
	return len(OnlyDigits(value)) >= minPhone
}

// IsCEP reports whether the value is exactly eight digits after stripping.
func IsCEP(value string) bool {
	return len(OnlyDigits(value)) == cepLength
}

// IsUF reports whether the value is a two-letter state code.
func IsUF(value string) bool {
	s := strings.TrimSpace(value)
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// IsCPF validates a CPF using the standard weighted-sum mod-11 check digits.
// Formatting characters are stripped first; all-repeated-digit sequences are
// rejected even when their check digits would match.
func IsCPF(value string) bool {
	c := OnlyDigits(value)
	if len(c) != cpfLength {
		return false
	}
	if allDigitsEqual(c) {
		return false
	}

	d1 := cpfCheckDigit(c[:9], 10)
	d2 := cpfCheckDigit(c[:10], 11)
	return d1 == int(c[9]-'0') && d2 == int(c[10]-'0')
}

// cpfCheckDigit computes one CPF verification digit: each digit is multiplied
// by a descending factor, and (total*10) mod 11 maps to the digit, with a
// result of 10 collapsing to 0.
func cpfCheckDigit(base string, factor int) int {
	total := 0
	for i := 0; i < len(base); i++ {
		total += int(base[i]-'0') * (factor - i)
	}
	mod := (total * 10) % 11
	if mod == 10 {
		return 0
	}
	return mod
}

func allDigitsEqual(value string) bool {
	for i := 1; i < len(value); i++ {
		if value[i] != value[0] {
			return false
		}
	}
	return true
}
