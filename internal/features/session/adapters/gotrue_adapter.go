package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dispatch-console/internal/core/httpclient"
	"dispatch-console/internal/features/session/domain"
)

// GoTrueAdapter implements the Authenticator interface against the hosted auth service.
type GoTrueAdapter struct {
	// client is the HTTP client used for auth requests.
	client *http.Client
	// baseURL is the project URL; auth endpoints live under /auth/v1.
	baseURL string
	// key is the project's public key.
	key string
	// now is replaceable in tests.
	now func() time.Time
}

// NewGoTrueAdapter creates a new instance of GoTrueAdapter.
func NewGoTrueAdapter(baseURL, key string, client *http.Client) *GoTrueAdapter {
	return &GoTrueAdapter{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		now:     time.Now,
	}
}

// SignInWithPassword implements Authenticator.
func (a *GoTrueAdapter) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	body := map[string]string{"email": email, "password": password}
	return a.token(ctx, "password", body)
}

// Refresh implements Authenticator.
func (a *GoTrueAdapter) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	return a.token(ctx, "refresh_token", body)
}

// SignOut implements Authenticator.
func (a *GoTrueAdapter) SignOut(ctx context.Context, accessToken string) error {
	url := a.baseURL + "/auth/v1/logout"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	a.setHeaders(req)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return &httpclient.HTTPError{StatusCode: resp.StatusCode, URL: url, Message: errorMessage(data)}
	}
	return nil
}

func (a *GoTrueAdapter) token(ctx context.Context, grant string, body any) (*domain.Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := a.baseURL + "/auth/v1/token?grant_type=" + grant
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	a.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := errorMessage(data)
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, msg)
		}
		return nil, &httpclient.HTTPError{StatusCode: resp.StatusCode, URL: url, Message: msg}
	}

	var tr tokenResponse
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("auth response without access token")
	}
	return a.mapToDomain(tr), nil
}

func (a *GoTrueAdapter) setHeaders(req *http.Request) {
	req.Header.Set("apikey", a.key)
	req.Header.Set("Accept", "application/json")
}

// mapToDomain prefers the absolute expiry and falls back to expires_in.
func (a *GoTrueAdapter) mapToDomain(tr tokenResponse) *domain.Session {
	var expiresAt time.Time
	switch {
	case tr.ExpiresAt > 0:
		expiresAt = time.Unix(tr.ExpiresAt, 0)
	case tr.ExpiresIn > 0:
		expiresAt = a.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return &domain.Session{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    expiresAt,
		User: domain.User{
			ID:    tr.User.ID,
			Email: tr.User.Email,
		},
	}
}

// errorMessage extracts the human message from either auth error shape.
func errorMessage(data []byte) string {
	var e authError
	if err := json.Unmarshal(data, &e); err == nil {
		for _, m := range []string{e.Msg, e.ErrorDescription, e.Message, e.Error} {
			if m != "" {
				return m
			}
		}
	}
	return strings.TrimSpace(string(data))
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type authError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}
