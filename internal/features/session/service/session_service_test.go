package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"dispatch-console/internal/core/gateway"
	"dispatch-console/internal/core/httpclient"
	"dispatch-console/internal/features/session/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthenticator is a mock implementation of Authenticator.
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthenticator) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthenticator) SignOut(ctx context.Context, accessToken string) error {
	args := m.Called(ctx, accessToken)
	return args.Error(0)
}

var testNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func newTestService(auth *MockAuthenticator) *SessionService {
	svc := NewSessionService(auth, nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestSessionService_SignIn(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	svc := newTestService(auth)

	session := &domain.Session{
		AccessToken: "access-1",
		ExpiresAt:   testNow.Add(time.Hour),
		User:        domain.User{ID: "u1", Email: "staff@example.com"},
	}
	auth.On("SignInWithPassword", ctx, "staff@example.com", "secret").Return(session, nil)

	var notified []*domain.Session
	svc.Subscribe(func(s *domain.Session) { notified = append(notified, s) })

	got, err := svc.SignIn(ctx, " staff@example.com ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.User.ID)
	require.Len(t, notified, 1)
	assert.Equal(t, "access-1", notified[0].AccessToken)

	token, err := svc.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-1", token)
	auth.AssertExpectations(t)
}

func TestSessionService_SignIn_Errors(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	svc := newTestService(auth)

	_, err := svc.SignIn(ctx, "", "secret")
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)

	auth.On("SignInWithPassword", ctx, "staff@example.com", "wrong").Return(nil, domain.ErrInvalidCredentials)
	_, err = svc.SignIn(ctx, "staff@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, svc.Current())
}

func TestSessionService_NoSession(t *testing.T) {
	svc := newTestService(new(MockAuthenticator))

	_, err := svc.AccessToken(context.Background())
	assert.ErrorIs(t, err, gateway.ErrNoSession)
}

func TestSessionService_Refresh(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	svc := newTestService(auth)
	svc.set(&domain.Session{AccessToken: "old", RefreshToken: "r1", ExpiresAt: testNow.Add(10 * time.Second)})

	auth.On("Refresh", ctx, "r1").Return(&domain.Session{
		AccessToken:  "new",
		RefreshToken: "r2",
		ExpiresAt:    testNow.Add(time.Hour),
	}, nil).Once()

	var wg sync.WaitGroup
	tokens := make([]string, 5)
	for i := range tokens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], _ = svc.AccessToken(ctx)
		}(i)
	}
	wg.Wait()

	for _, tok := range tokens {
		assert.Equal(t, "new", tok)
	}
	auth.AssertNumberOfCalls(t, "Refresh", 1)
}

func TestSessionService_RefreshFailureSignsOut(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	svc := newTestService(auth)
	svc.set(&domain.Session{AccessToken: "old", RefreshToken: "r1", ExpiresAt: testNow.Add(-time.Minute)})

	last := &domain.Session{}
	svc.Subscribe(func(s *domain.Session) { last = s })

	auth.On("Refresh", ctx, "r1").Return(nil, domain.ErrInvalidCredentials)

	_, err := svc.AccessToken(ctx)
	assert.ErrorIs(t, err, gateway.ErrNoSession)
	assert.Nil(t, svc.Current())
	assert.Nil(t, last)
}

func TestSessionService_RefreshForbiddenSignsOut(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	svc := newTestService(auth)
	svc.set(&domain.Session{AccessToken: "old", RefreshToken: "r1", ExpiresAt: testNow.Add(-time.Minute)})

	auth.On("Refresh", ctx, "r1").Return(nil, &httpclient.HTTPError{StatusCode: http.StatusForbidden, Message: "banned"})

	_, err := svc.AccessToken(ctx)
	assert.ErrorIs(t, err, gateway.ErrNoSession)
	assert.Nil(t, svc.Current())
}

func TestSessionService_RefreshFailureKeepsSession(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		err  error
	}{
		{name: "canceled", ctx: canceled, err: context.Canceled},
		{name: "network", ctx: context.Background(), err: errors.New("failed to execute request: connection reset")},
		{name: "server error", ctx: context.Background(), err: &httpclient.HTTPError{StatusCode: http.StatusBadGateway, Message: "bad gateway"}},
		{name: "rate limited", ctx: context.Background(), err: &httpclient.HTTPError{StatusCode: http.StatusTooManyRequests, Message: "slow down"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(MockAuthenticator)
			svc := newTestService(auth)
			session := &domain.Session{AccessToken: "old", RefreshToken: "r1", ExpiresAt: testNow.Add(10 * time.Second)}
			svc.set(session)

			notified := 0
			svc.Subscribe(func(*domain.Session) { notified++ })

			auth.On("Refresh", tt.ctx, "r1").Return(nil, tt.err)

			_, err := svc.AccessToken(tt.ctx)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.NotErrorIs(t, err, gateway.ErrNoSession)
			assert.Same(t, session, svc.Current())
			assert.Zero(t, notified)
		})
	}

	t.Run("next caller retries", func(t *testing.T) {
		ctx := context.Background()
		auth := new(MockAuthenticator)
		svc := newTestService(auth)
		svc.set(&domain.Session{AccessToken: "old", RefreshToken: "r1", ExpiresAt: testNow.Add(10 * time.Second)})

		auth.On("Refresh", ctx, "r1").Return(nil, errors.New("timeout")).Once()
		auth.On("Refresh", ctx, "r1").Return(&domain.Session{AccessToken: "new", RefreshToken: "r2", ExpiresAt: testNow.Add(time.Hour)}, nil).Once()

		_, err := svc.AccessToken(ctx)
		require.Error(t, err)

		token, err := svc.AccessToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "new", token)
	})
}

func TestSessionService_SignOut(t *testing.T) {
	ctx := context.Background()
	auth := new(MockAuthenticator)
	svc := newTestService(auth)

	// Signing out without a session is a no-op.
	require.NoError(t, svc.SignOut(ctx))

	svc.set(&domain.Session{AccessToken: "access-1"})
	auth.On("SignOut", ctx, "access-1").Return(errors.New("network down"))

	calls := 0
	unsubscribe := svc.Subscribe(func(s *domain.Session) {
		calls++
		assert.Nil(t, s)
	})

	require.NoError(t, svc.SignOut(ctx))
	assert.Nil(t, svc.Current())
	assert.Equal(t, 1, calls)

	unsubscribe()
	svc.set(nil)
	assert.Equal(t, 1, calls)
}
