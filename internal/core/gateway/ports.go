// Package gateway is the port to the hosted data platform: table reads and
// writes plus remote procedure calls, returning JSON rows.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrNoSession is returned when a call needs an identity and no session is active.
	ErrNoSession = errors.New("gateway: no active session")
	// ErrUnfilteredWrite is returned for updates and deletes without any filter.
	ErrUnfilteredWrite = errors.New("gateway: refusing write without filter")
)

// Gateway is the remote table/RPC service. Every operation is a network call
// and may fail with *Error, ErrNoSession or a transport error.
type Gateway interface {
	// Select returns the rows of table matching q as a JSON array.
	Select(ctx context.Context, table string, q Query) (json.RawMessage, error)
	// Insert stores record and returns the inserted rows as a JSON array.
	Insert(ctx context.Context, table string, record any) (json.RawMessage, error)
	// Update applies patch to the rows matching filters and returns them.
	Update(ctx context.Context, table string, patch any, filters ...Filter) (json.RawMessage, error)
	// Delete removes the rows matching filters.
	Delete(ctx context.Context, table string, filters ...Filter) error
	// Call invokes a stored procedure with named args and returns its rows.
	Call(ctx context.Context, procedure string, args any) (json.RawMessage, error)
	// Close releases the underlying connections.
	Close()
}

// TokenSource supplies the access token of the current session.
// Implementations return ErrNoSession when nobody is signed in.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

// AccessToken implements TokenSource.
func (f TokenFunc) AccessToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// Decode unmarshals a JSON row array into out, treating an empty body as no rows.
func Decode(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("[]")
	}
	return json.Unmarshal(raw, out)
}
