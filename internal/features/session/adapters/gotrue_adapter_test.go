package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dispatch-console/internal/core/httpclient"
	"dispatch-console/internal/features/session/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoTrueAdapter_SignInWithPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "staff@example.com", body["email"])
		assert.Equal(t, "secret", body["password"])

		w.Write([]byte(`{
			"access_token": "access-1",
			"token_type": "bearer",
			"expires_in": 3600,
			"expires_at": 1736510400,
			"refresh_token": "refresh-1",
			"user": {"id": "8d0f", "email": "staff@example.com"}
		}`))
	}))
	defer server.Close()

	adapter := NewGoTrueAdapter(server.URL+"/", "anon-key", server.Client())
	s, err := adapter.SignInWithPassword(context.Background(), "staff@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "access-1", s.AccessToken)
	assert.Equal(t, "refresh-1", s.RefreshToken)
	assert.Equal(t, time.Unix(1736510400, 0), s.ExpiresAt)
	assert.Equal(t, "8d0f", s.User.ID)
	assert.Equal(t, "staff@example.com", s.User.Email)
}

func TestGoTrueAdapter_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":400,"error_code":"invalid_credentials","msg":"Invalid login credentials"}`))
	}))
	defer server.Close()

	adapter := NewGoTrueAdapter(server.URL, "anon-key", server.Client())
	_, err := adapter.SignInWithPassword(context.Background(), "staff@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestGoTrueAdapter_Refresh(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh-1", body["refresh_token"])

		w.Write([]byte(`{"access_token":"access-2","expires_in":60,"refresh_token":"refresh-2","user":{"id":"8d0f"}}`))
	}))
	defer server.Close()

	adapter := NewGoTrueAdapter(server.URL, "anon-key", server.Client())
	adapter.now = func() time.Time { return now }

	s, err := adapter.Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "access-2", s.AccessToken)
	assert.Equal(t, now.Add(time.Minute), s.ExpiresAt)
}

func TestGoTrueAdapter_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	adapter := NewGoTrueAdapter(server.URL, "anon-key", server.Client())
	_, err := adapter.Refresh(context.Background(), "refresh-1")

	var httpErr *httpclient.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Equal(t, "upstream down", httpErr.Message)
	assert.True(t, httpErr.Retryable())
}

func TestGoTrueAdapter_SignOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	adapter := NewGoTrueAdapter(server.URL, "anon-key", server.Client())
	assert.NoError(t, adapter.SignOut(context.Background(), "access-1"))
}
