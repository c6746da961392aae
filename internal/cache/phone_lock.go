package cache

import (
	"context"
	"sync"
	"time"
)

// PhoneLock serializes checkout for one phone number at a time. The
// matcher read and the merge/create write share a transaction, but the
// lock closes the remaining window where two near-simultaneous
// submissions from the same phone could both see "no match" and create
// two orders.
//
// With Redis enabled the lock is a SETNX key with a TTL, so it also
// covers multi-process deployments. Without Redis it degrades to an
// in-process mutex table, which is correct for a single instance.
type PhoneLock struct {
	ttl time.Duration

	mu    sync.Mutex
	local map[string]*sync.Mutex
}

// NewPhoneLock builds a phone lock with the given Redis key TTL.
func NewPhoneLock(ttl time.Duration) *PhoneLock {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &PhoneLock{
		ttl:   ttl,
		local: make(map[string]*sync.Mutex),
	}
}

func phoneLockKey(phoneNumber string) string {
	return "checkout_lock:" + phoneNumber
}

// Acquire takes the per-phone lock. It returns a release func on
// success, false when another checkout holds the lock.
func (l *PhoneLock) Acquire(ctx context.Context, phoneNumber string) (func(), bool, error) {
	if Enabled() {
		key := buildKey(phoneLockKey(phoneNumber))
		ok, err := Client().SetNX(ctx, key, "1", l.ttl).Result()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		release := func() {
			_ = Client().Del(context.Background(), key).Err()
		}
		return release, true, nil
	}

	l.mu.Lock()
	entry, ok := l.local[phoneNumber]
	if !ok {
		entry = &sync.Mutex{}
		l.local[phoneNumber] = entry
	}
	l.mu.Unlock()

	if !entry.TryLock() {
		return nil, false, nil
	}
	return entry.Unlock, true, nil
}
