// Package credentials holds the bearer token slot shared by the API client and
// the session.
//
// The slot keeps at most one token. It performs no expiry or validity checks:
// a stored token may already be rejected by the server.
package credentials

import "context"

// Store is the token slot. Get reports whether a token is present.
type Store interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
