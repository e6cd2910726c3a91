package ports

import (
	"context"

	"github.com/bigbear/lessons-api/internal/core/domain"
)

// PasswordHasher hashes and checks passwords. Verify returns false with a
// nil error on mismatch; an error means the digest itself is unusable.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) (bool, error)
}

type TokenIssuer interface {
	Issue(claims domain.Claims) (string, error)
}

// TokenVerifier returns domain.ErrInvalidToken for any token it rejects.
type TokenVerifier interface {
	Verify(token string) (domain.Claims, error)
}

// UserLocker serializes progress writes for a single user. The returned
// context is cancelled before the lease can expire; work done under the lock
// must use it.
type UserLocker interface {
	Lock(ctx context.Context, userID string) (leaseCtx context.Context, unlock func(), err error)
}
