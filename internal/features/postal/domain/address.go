package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrInvalidPostalCode is returned when a postal code does not have 8 digits.
	ErrInvalidPostalCode = errors.New("invalid postal code")
	// ErrPostalCodeNotFound is returned when the lookup service knows no such code.
	ErrPostalCodeNotFound = errors.New("postal code not found")
)

// Address is the result of a postal-code lookup.
type Address struct {
	PostalCode   string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

// Line renders the address the way the delivery forms are prefilled:
// "street, neighborhood, city - state".
func (a Address) Line() string {
	return fmt.Sprintf("%s, %s, %s - %s", a.Street, a.Neighborhood, a.City, a.State)
}

// NormalizePostalCode strips formatting ("01001-000") and checks for 8 digits.
func NormalizePostalCode(raw string) (string, error) {
	var sb strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			sb.WriteRune(r)
		case r == '-' || r == '.' || unicode.IsSpace(r):
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidPostalCode, raw)
		}
	}
	if sb.Len() != 8 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPostalCode, raw)
	}
	return sb.String(), nil
}

// FormatPostalCode renders 8 digits as "01001-000"; other input is returned unchanged.
func FormatPostalCode(digits string) string {
	if len(digits) != 8 {
		return digits
	}
	return digits[:5] + "-" + digits[5:]
}
