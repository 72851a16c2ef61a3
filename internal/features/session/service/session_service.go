package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"dispatch-console/internal/core/gateway"
	"dispatch-console/internal/core/httpclient"
	"dispatch-console/internal/features/session/domain"
	"dispatch-console/internal/features/session/ports"

	"go.uber.org/zap"
)

// refreshLeeway renews the access token this long before it expires.
const refreshLeeway = 30 * time.Second

// Listener receives the current session after every change; nil means signed out.
type Listener func(*domain.Session)

// SessionService holds the process session and implements gateway.TokenSource.
type SessionService struct {
	auth ports.Authenticator
	log  *zap.Logger
	now  func() time.Time

	mu        sync.RWMutex
	current   *domain.Session
	listeners map[int]Listener
	nextID    int

	// refreshMu serializes token refreshes so concurrent callers share one.
	refreshMu sync.Mutex
}

var _ gateway.TokenSource = (*SessionService)(nil)

// NewSessionService creates a new SessionService.
func NewSessionService(auth ports.Authenticator, log *zap.Logger) *SessionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionService{
		auth:      auth,
		log:       log,
		now:       time.Now,
		listeners: make(map[int]Listener),
	}
}

// SignIn authenticates with email and password and makes the result current.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	session, err := s.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	s.log.Info("Signed in", zap.String("user_id", session.User.ID))
	s.set(session)
	return s.Current(), nil
}

// SignOut revokes and clears the current session. Revocation failures are
// logged; the local session is cleared regardless.
func (s *SessionService) SignOut(ctx context.Context) error {
	current := s.Current()
	if current == nil {
		return nil
	}
	if err := s.auth.SignOut(ctx, current.AccessToken); err != nil {
		s.log.Warn("Failed to revoke session", zap.Error(err))
	}
	s.log.Info("Signed out", zap.String("user_id", current.User.ID))
	s.set(nil)
	return nil
}

// Current returns a copy of the current session, or nil.
func (s *SessionService) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

// Subscribe registers fn for session changes and returns its unsubscribe func.
func (s *SessionService) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// AccessToken implements gateway.TokenSource. An expiring token is refreshed
// first. The session ends only when the auth service rejects the refresh
// token; cancellations and transient failures keep it for the next caller.
func (s *SessionService) AccessToken(ctx context.Context) (string, error) {
	current := s.Current()
	if current == nil {
		return "", gateway.ErrNoSession
	}
	if !current.ExpiresWithin(s.now(), refreshLeeway) {
		return current.AccessToken, nil
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	// Another caller may have refreshed while we waited.
	current = s.Current()
	if current == nil {
		return "", gateway.ErrNoSession
	}
	if !current.ExpiresWithin(s.now(), refreshLeeway) {
		return current.AccessToken, nil
	}

	refreshed, err := s.auth.Refresh(ctx, current.RefreshToken)
	if err != nil {
		if !refreshRejected(err) {
			if ctx.Err() == nil {
				s.log.Warn("Session refresh failed, keeping session", zap.Error(err))
			}
			return "", fmt.Errorf("failed to refresh session: %w", err)
		}
		s.log.Warn("Session refresh rejected, signing out", zap.Error(err))
		s.set(nil)
		return "", fmt.Errorf("%w: refresh failed: %v", gateway.ErrNoSession, err)
	}

	s.log.Debug("Session refreshed", zap.Time("expires_at", refreshed.ExpiresAt))
	s.set(refreshed)
	return refreshed.AccessToken, nil
}

// refreshRejected reports whether the auth service refused the refresh token
// itself, as opposed to the call failing on the way there.
func refreshRejected(err error) bool {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return true
	}
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusBadRequest &&
			httpErr.StatusCode < http.StatusInternalServerError &&
			!httpErr.Retryable()
	}
	return false
}

// set replaces the session and notifies listeners outside the lock.
func (s *SessionService) set(session *domain.Session) {
	s.mu.Lock()
	s.current = session
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	snapshot := s.Current()
	for _, fn := range listeners {
		fn(snapshot)
	}
}
