package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultLockTTL = 30 * time.Second

// releaseScript deletes the key only while it still holds the caller's token,
// so an attempt whose lock expired cannot drop a lock taken after it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RegistrationLock serializes registration attempts for one participant on
// one event across API instances.
// Key format: reglock:<event_id>:<participant>, value: holder token.
type RegistrationLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRegistrationLock creates a RegistrationLock wrapping the given Redis
// client. Locks expire after ttl so a crashed holder cannot block forever.
func NewRegistrationLock(client *redis.Client, ttl time.Duration) *RegistrationLock {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RegistrationLock{client: client, ttl: ttl}
}

// Acquire reports whether the lock was taken by this call and returns the
// token to release it with.
func (l *RegistrationLock) Acquire(ctx context.Context, eventID, participant string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key(eventID, participant), token, l.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("acquire registration lock: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release drops the lock if it is still held under token. Releasing a lock
// that expired or passed to another holder is not an error.
func (l *RegistrationLock) Release(ctx context.Context, eventID, participant, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key(eventID, participant)}, token).Err(); err != nil {
		return fmt.Errorf("release registration lock: %w", err)
	}
	return nil
}

func (l *RegistrationLock) key(eventID, participant string) string {
	return fmt.Sprintf("reglock:%s:%s", eventID, participant)
}
