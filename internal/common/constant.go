// Package common contains constants shared by the client packages.
package common

const (
	// TokenKey is the metadata key holding the bearer token.
	TokenKey = "mn_token"

	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
	ContentTypeHeader   = "Content-Type"
	ContentTypeJSON     = "application/json"
	RequestIDHeader     = "X-Request-Id"
)
