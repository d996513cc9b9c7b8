package cron

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultLockTTL = 10 * time.Minute

// ErrLockLost reports that the cycle outlived the lock TTL, so another worker
// may have started its own low-stock scan and rollup in the meantime.
var ErrLockLost = errors.New("cron lock expired before release")

// Lock keeps a single cron worker per station running a cycle at a time.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

type lockStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	CompareAndDelete(ctx context.Context, key, value string) (bool, error)
}

// CycleLock is a redis lease held for one cron cycle. The stored token is
// "<worker>/<uuid>" so the key shows which worker host owns the cycle.
type CycleLock struct {
	store  lockStore
	key    string
	worker string
	ttl    time.Duration
	token  string
}

// NewCycleLock builds the lease. A blank worker name becomes "cron-worker".
func NewCycleLock(store lockStore, key, worker string, ttl time.Duration) (*CycleLock, error) {
	if store == nil {
		return nil, errors.New("redis client required for lock")
	}
	if key == "" {
		return nil, errors.New("lock key is required")
	}
	worker = strings.TrimSpace(worker)
	if worker == "" {
		worker = "cron-worker"
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &CycleLock{store: store, key: key, worker: worker, ttl: ttl}, nil
}

// Acquire claims the lease for the configured TTL. It reports false while
// another worker holds it.
func (l *CycleLock) Acquire(ctx context.Context) (bool, error) {
	token := l.worker + "/" + uuid.NewString()
	ok, err := l.store.SetNX(ctx, l.key, token, l.ttl)
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", l.key, err)
	}
	if ok {
		l.token = token
	}
	return ok, nil
}

// Token returns the value written by the last successful Acquire, or "" when
// the lease is not held.
func (l *CycleLock) Token() string { return l.token }

// Release drops the lease if this worker still owns it. It returns ErrLockLost
// when the key expired or was taken over before the cycle finished.
func (l *CycleLock) Release(ctx context.Context) error {
	if l.token == "" {
		return nil
	}
	token := l.token
	l.token = ""
	deleted, err := l.store.CompareAndDelete(ctx, l.key, token)
	if err != nil {
		return fmt.Errorf("release %s: %w", l.key, err)
	}
	if !deleted {
		return ErrLockLost
	}
	return nil
}
