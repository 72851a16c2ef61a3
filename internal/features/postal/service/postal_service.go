package service

import (
	"context"
	"fmt"

	"dispatch-console/internal/features/postal/domain"
	"dispatch-console/internal/features/postal/ports"
)

// PostalService resolves postal codes typed into the person and courier forms.
type PostalService struct {
	provider ports.AddressProvider
}

// NewPostalService creates a new PostalService.
func NewPostalService(provider ports.AddressProvider) *PostalService {
	return &PostalService{provider: provider}
}

// Lookup validates raw and resolves it.
func (s *PostalService) Lookup(ctx context.Context, raw string) (*domain.Address, error) {
	code, err := domain.NormalizePostalCode(raw)
	if err != nil {
		return nil, err
	}
	addr, err := s.provider.Lookup(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", domain.FormatPostalCode(code), err)
	}
	return addr, nil
}
