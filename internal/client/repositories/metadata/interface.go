// Package metadata stores small key/value records in the local client database.
package metadata

import (
	"context"
)

// Repository is a key/value table. Get reports a missing key as (nil, nil).
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
