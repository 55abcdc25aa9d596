// Package revoked is the access-token blacklist filled on logout.
package revoked

import (
	"context"
	"time"
)

// Repository records revoked access tokens by jti. Add is idempotent.
type Repository interface {
	Add(ctx context.Context, jti string, expiresAt time.Time) error
	Exists(ctx context.Context, jti string) (bool, error)
}
