package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dispatch-console/internal/core/httpclient"
	"dispatch-console/internal/features/postal/domain"

	"github.com/cenkalti/backoff/v5"
)

const defaultLookupTries = 3

// ViaCEPAdapter implements the AddressProvider interface using the ViaCEP web service.
type ViaCEPAdapter struct {
	// client is the HTTP client used for lookups.
	client *http.Client
	// baseURL is the service root, e.g. https://viacep.com.br.
	baseURL string
	// maxTries bounds attempts on 429 and 5xx answers.
	maxTries uint
}

// ViaCEPOption configures a ViaCEPAdapter.
type ViaCEPOption func(*ViaCEPAdapter)

// WithLookupTries sets how many attempts a lookup gets.
func WithLookupTries(n uint) ViaCEPOption {
	return func(a *ViaCEPAdapter) {
		a.maxTries = n
	}
}

// NewViaCEPAdapter creates a new instance of ViaCEPAdapter.
func NewViaCEPAdapter(baseURL string, client *http.Client, opts ...ViaCEPOption) *ViaCEPAdapter {
	a := &ViaCEPAdapter{
		client:   client,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxTries: defaultLookupTries,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Lookup implements AddressProvider. Transient upstream answers are retried.
func (a *ViaCEPAdapter) Lookup(ctx context.Context, postalCode string) (*domain.Address, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond

	return backoff.Retry(ctx, func() (*domain.Address, error) {
		addr, err := a.lookup(ctx, postalCode)
		var httpErr *httpclient.HTTPError
		if err != nil && !(errors.As(err, &httpErr) && httpErr.Retryable()) {
			return nil, backoff.Permanent(err)
		}
		return addr, err
	}, backoff.WithBackOff(policy), backoff.WithMaxTries(a.maxTries))
}

func (a *ViaCEPAdapter) lookup(ctx context.Context, postalCode string) (*domain.Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", a.baseURL, postalCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPostalCode, postalCode)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &httpclient.HTTPError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	var r viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if r.notFound() {
		return nil, fmt.Errorf("%w: %s", domain.ErrPostalCodeNotFound, postalCode)
	}

	return &domain.Address{
		PostalCode:   r.CEP,
		Street:       r.Logradouro,
		Neighborhood: r.Bairro,
		City:         r.Localidade,
		State:        r.UF,
	}, nil
}

type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	// Erro is true or "true" for unknown codes depending on the API version.
	Erro any `json:"erro"`
}

func (r viaCEPResponse) notFound() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return false
}
