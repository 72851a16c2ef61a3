package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials is returned when the auth service rejects email and password.
	ErrInvalidCredentials = errors.New("invalid login credentials")
	// ErrMissingCredentials is returned when email or password is blank.
	ErrMissingCredentials = errors.New("email and password are required")
)

// User is the signed-in staff member.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an authenticated identity held by the process.
type Session struct {
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// ExpiresWithin reports whether the access token expires before now+leeway.
// A zero ExpiresAt never expires.
func (s *Session) ExpiresWithin(now time.Time, leeway time.Duration) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(leeway).Before(s.ExpiresAt)
}
