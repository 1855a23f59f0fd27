package service

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrAwaitTimeout reports that the bounded wait elapsed without the awaited
// interaction arriving. Callers treat it as a logged non-fatal outcome.
var ErrAwaitTimeout = errors.New("no interaction received within the wait budget")

// Awaiter implements the bounded wait for a follow-up interaction, keyed by
// the message the interaction is expected on. The wait ends on delivery,
// timeout, or context cancellation (process shutdown).
type Awaiter struct {
	mutex   sync.Mutex
	waiters map[string]chan struct{}
}

func NewAwaiter() *Awaiter {
	return &Awaiter{waiters: make(map[string]chan struct{})}
}

// Await blocks until the keyed interaction is resolved, the timeout elapses,
// or ctx is cancelled. Only one waiter per key may be armed at a time; a
// second Await on the same key replaces the first.
func (a *Awaiter) Await(ctx context.Context, key string, timeout time.Duration) error {
	ch := make(chan struct{})

	a.mutex.Lock()
	a.waiters[key] = ch
	a.mutex.Unlock()

	defer func() {
		a.mutex.Lock()
		if a.waiters[key] == ch {
			delete(a.waiters, key)
		}
		a.mutex.Unlock()
	}()

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-ch:
		return nil
	case <-t.C:
		return ErrAwaitTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending reports how many waiters are currently armed.
func (a *Awaiter) Pending() int {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return len(a.waiters)
}

// Resolve releases the waiter armed for key, if any, and reports whether one
// was waiting.
func (a *Awaiter) Resolve(key string) bool {
	a.mutex.Lock()
	ch, ok := a.waiters[key]
	if ok {
		delete(a.waiters, key)
	}
	a.mutex.Unlock()

	if ok {
		close(ch)
	}

	return ok
}
