package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrLockNotAcquired = errors.New("appointment lock not acquired")

// Locker serializes the lifecycle write paths of a single appointment across
// API replicas. Locks are short-lived; the TTL bounds how long a crashed
// holder can block others.
type Locker interface {
	WithAppointmentLock(ctx context.Context, appointmentID uint, fn func(ctx context.Context) error) error
}

type appointmentLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAppointmentLocker(client *redis.Client, ttl time.Duration) Locker {
	return &appointmentLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *appointmentLocker) WithAppointmentLock(ctx context.Context, appointmentID uint, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("lock:teleconsult:%d", appointmentID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire appointment lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		// Release on a detached context: a canceled request must not leave
		// the lock held for the rest of the TTL.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = l.release(releaseCtx, key, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *appointmentLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release appointment lock: %w", err)
	}
	return nil
}
