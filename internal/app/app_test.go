package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dispatch-console/internal/core/config"
	"dispatch-console/internal/core/gateway"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPlatform fakes the auth and REST endpoints of the hosted platform.
func newPlatform(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/auth/v1/token":
			json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "access-1",
				"refresh_token": "refresh-1",
				"expires_in":    3600,
				"user":          map[string]any{"id": "u1", "email": "staff@example.com"},
			})
		case r.URL.Path == "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		case strings.HasPrefix(r.URL.Path, "/rest/v1/rpc/"):
			w.Write([]byte(`[{"id":1,"id_pessoa":3,"nome_cliente":"Ana","vr_calculado":12.5,"id_forma_pgto":1,"status":0}]`))
		case r.URL.Path == "/rest/v1/motoboys":
			w.Write([]byte(`[{"id":7,"nome":"Carlos","ativo":true}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(url string) *config.AppConfig {
	return &config.AppConfig{
		Gateway: config.GatewayConfig{URL: url, Key: "anon-key", Driver: config.DriverREST, Timeout: 2 * time.Second},
		Sync:    config.SyncConfig{RefreshInterval: time.Hour},
		Postal:  config.PostalConfig{URL: url, CacheTTL: time.Hour},
	}
}

func TestNew_SessionDrivesConsole(t *testing.T) {
	platform := newPlatform(t)
	redis := miniredis.RunT(t)

	cfg := testConfig(platform.URL)
	cfg.Postal.RedisURL = "redis://" + redis.Addr()

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Postal)
	_, err = a.Consoles.Current()
	assert.ErrorIs(t, err, gateway.ErrNoSession)

	_, err = a.Session.SignIn(context.Background(), "staff@example.com", "secret")
	require.NoError(t, err)

	console, err := a.Consoles.Current()
	require.NoError(t, err)
	assert.Equal(t, "u1", console.UserID)

	assert.Eventually(t, func() bool {
		return len(console.Sync.Snapshot().Deliveries) == 1 && console.Roster.Loaded()
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, a.Session.SignOut(context.Background()))
	_, err = a.Consoles.Current()
	assert.ErrorIs(t, err, gateway.ErrNoSession)
}

func TestNew_BadRedisURL(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Postal.RedisURL = "not-a-url"

	_, err := New(context.Background(), cfg)
	assert.ErrorContains(t, err, "postal cache")
}
