package ports

import (
	"context"

	"dispatch-console/internal/features/postal/domain"
)

// AddressProvider defines the interface for postal-code lookups.
type AddressProvider interface {
	// Lookup resolves an 8-digit postal code. Unknown codes yield domain.ErrPostalCodeNotFound.
	Lookup(ctx context.Context, postalCode string) (*domain.Address, error)
}
