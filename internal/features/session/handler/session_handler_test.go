package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dispatch-console/internal/features/session/domain"
	"dispatch-console/internal/features/session/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthenticator accepts a single email/password pair.
type fakeAuthenticator struct {
	signedOut []string
}

func (f *fakeAuthenticator) SignInWithPassword(_ context.Context, email, password string) (*domain.Session, error) {
	if email != "staff@example.com" || password != "secret" {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Session{
		AccessToken: "access-1",
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        domain.User{ID: "u1", Email: email},
	}, nil
}

func (f *fakeAuthenticator) Refresh(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrInvalidCredentials
}

func (f *fakeAuthenticator) SignOut(_ context.Context, token string) error {
	f.signedOut = append(f.signedOut, token)
	return nil
}

func setupApp() (*fiber.App, *service.SessionService, *fakeAuthenticator) {
	auth := &fakeAuthenticator{}
	svc := service.NewSessionService(auth, nil)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	NewSessionHandler(svc).RegisterRoutes(app)
	return app, svc, auth
}

func TestSessionHandler_SignInFlow(t *testing.T) {
	app, svc, auth := setupApp()

	req := httptest.NewRequest("GET", "/session", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("POST", "/session", strings.NewReader(`{"email":"staff@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotContains(t, body, "access_token")
	assert.Equal(t, "u1", body["user"].(map[string]any)["id"])
	require.NotNil(t, svc.Current())

	req = httptest.NewRequest("DELETE", "/session", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Nil(t, svc.Current())
	assert.Equal(t, []string{"access-1"}, auth.signedOut)
}

func TestSessionHandler_SignInErrors(t *testing.T) {
	app, _, _ := setupApp()

	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{"MalformedBody", `{`, fiber.StatusBadRequest},
		{"MissingPassword", `{"email":"staff@example.com"}`, fiber.StatusBadRequest},
		{"WrongPassword", `{"email":"staff@example.com","password":"nope"}`, fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/session", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resp.StatusCode)

			var errResp ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
			assert.Equal(t, "test-ray-id", errResp.RayID)
			assert.NotEmpty(t, errResp.Message)
		})
	}
}
