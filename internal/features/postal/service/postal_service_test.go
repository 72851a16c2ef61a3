package service

import (
	"context"
	"testing"

	"dispatch-console/internal/features/postal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	calls []string
	addr  *domain.Address
	err   error
}

func (s *stubProvider) Lookup(_ context.Context, code string) (*domain.Address, error) {
	s.calls = append(s.calls, code)
	return s.addr, s.err
}

func TestPostalService_Lookup(t *testing.T) {
	provider := &stubProvider{addr: &domain.Address{Street: "Praça da Sé"}}
	svc := NewPostalService(provider)

	addr, err := svc.Lookup(context.Background(), "01001-000")
	require.NoError(t, err)
	assert.Equal(t, "Praça da Sé", addr.Street)
	assert.Equal(t, []string{"01001000"}, provider.calls)
}

func TestPostalService_InvalidSkipsProvider(t *testing.T) {
	provider := &stubProvider{}
	svc := NewPostalService(provider)

	_, err := svc.Lookup(context.Background(), "0100-100")
	assert.ErrorIs(t, err, domain.ErrInvalidPostalCode)
	assert.Empty(t, provider.calls)
}

func TestPostalService_NotFound(t *testing.T) {
	provider := &stubProvider{err: domain.ErrPostalCodeNotFound}
	svc := NewPostalService(provider)

	_, err := svc.Lookup(context.Background(), "99999-999")
	assert.ErrorIs(t, err, domain.ErrPostalCodeNotFound)
	assert.Contains(t, err.Error(), "99999-999")
}
