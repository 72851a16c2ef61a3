package ports

import (
	"context"

	"dispatch-console/internal/features/session/domain"
)

// Authenticator defines the interface for the hosted identity service.
type Authenticator interface {
	// SignInWithPassword exchanges credentials for a session.
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)
	// Refresh exchanges a refresh token for a new session.
	Refresh(ctx context.Context, refreshToken string) (*domain.Session, error)
	// SignOut revokes the session identified by accessToken.
	SignOut(ctx context.Context, accessToken string) error
}
