package redisclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func testLocker(t *testing.T) (Locker, *miniredis.Miniredis) {
	t.Helper()

	m := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewAppointmentLocker(client, 10*time.Second), m
}

func TestWithAppointmentLock(t *testing.T) {
	locker, m := testLocker(t)

	ran := false
	err := locker.WithAppointmentLock(context.Background(), 7, func(ctx context.Context) error {
		ran = true
		if !m.Exists("lock:teleconsult:7") {
			t.Error("lock key not held during fn")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if !ran {
		t.Fatal("fn never ran")
	}
	if m.Exists("lock:teleconsult:7") {
		t.Error("lock key still held after fn returned")
	}
}

func TestWithAppointmentLockBusy(t *testing.T) {
	locker, m := testLocker(t)

	if err := m.Set("lock:teleconsult:7", "someone-else"); err != nil {
		t.Fatalf("set: %v", err)
	}

	err := locker.WithAppointmentLock(context.Background(), 7, func(ctx context.Context) error {
		t.Error("fn ran while the lock was held elsewhere")
		return nil
	})
	if !errors.Is(err, ErrLockNotAcquired) {
		t.Errorf("err = %v, want ErrLockNotAcquired", err)
	}

	// The foreign token must survive the failed attempt.
	if got, _ := m.Get("lock:teleconsult:7"); got != "someone-else" {
		t.Errorf("lock value = %q, want someone-else", got)
	}
}

func TestWithAppointmentLockReleasesAfterCancel(t *testing.T) {
	locker, m := testLocker(t)

	ctx, cancel := context.WithCancel(context.Background())
	err := locker.WithAppointmentLock(ctx, 7, func(ctx context.Context) error {
		// The request dies mid-critical-section.
		cancel()
		return ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	// The unlock must not ride the dead request context; otherwise the key
	// stays held until the TTL expires.
	if m.Exists("lock:teleconsult:7") {
		t.Error("lock key still held after canceled request returned")
	}
}
