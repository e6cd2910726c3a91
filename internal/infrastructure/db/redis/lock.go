package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bigbear/lessons-api/internal/core/domain"
)

const (
	defaultLockTTL = 30 * time.Second
	lockWait       = 2 * time.Second
	lockPoll       = 25 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-acquired by another request is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ProgressLocker implements ports.UserLocker with a SET NX lease per user.
// Key format: progress-lock:<user_id>
type ProgressLocker struct {
	client redis.Cmdable
	ttl    time.Duration
	log    zerolog.Logger
}

// NewProgressLocker returns a locker whose leases expire after ttl.
func NewProgressLocker(client redis.Cmdable, ttl time.Duration, log zerolog.Logger) *ProgressLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &ProgressLocker{client: client, ttl: ttl, log: log}
}

// Lock blocks until the user's lease is acquired, the wait budget is spent
// (domain.ErrProgressLocked) or ctx is done. The returned context expires
// one fifth of the TTL before the lease does.
func (l *ProgressLocker) Lock(ctx context.Context, userID string) (context.Context, func(), error) {
	key := l.key(userID)
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, lockWait)
	defer cancel()

	ticker := time.NewTicker(lockPoll)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(waitCtx, key, token, l.ttl).Result()
		if err != nil {
			if waitCtx.Err() != nil && ctx.Err() == nil {
				return nil, nil, domain.ErrProgressLocked
			}
			return nil, nil, fmt.Errorf("%w: progress lock: %v", domain.ErrStorageUnavailable, err)
		}
		if ok {
			leaseCtx, cancelLease := context.WithTimeout(ctx, l.ttl-l.ttl/5)
			return leaseCtx, func() {
				cancelLease()
				l.release(key, token, userID)
			}, nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			return nil, nil, domain.ErrProgressLocked
		case <-ticker.C:
		}
	}
}

func (l *ProgressLocker) release(key, token, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		l.log.Warn().Err(err).Str("user_id", userID).Msg("failed to release progress lock")
	}
}

func (l *ProgressLocker) key(userID string) string {
	return fmt.Sprintf("progress-lock:%s", userID)
}
