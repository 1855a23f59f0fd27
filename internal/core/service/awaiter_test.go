package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitResolved(t *testing.T) {
	awaiter := NewAwaiter()

	done := make(chan error, 1)
	go func() {
		done <- awaiter.Await(context.Background(), "m1", time.Minute)
	}()

	require.Eventually(t, func() bool {
		return awaiter.Resolve("m1")
	}, time.Second, time.Millisecond)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("await did not return after resolve")
	}
}

func TestAwaitTimeout(t *testing.T) {
	awaiter := NewAwaiter()

	err := awaiter.Await(context.Background(), "m1", 10*time.Millisecond)
	require.ErrorIs(t, err, ErrAwaitTimeout)

	// the expired waiter is gone
	assert.False(t, awaiter.Resolve("m1"))
}

func TestAwaitCancelled(t *testing.T) {
	awaiter := NewAwaiter()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- awaiter.Await(ctx, "m1", time.Minute)
	}()

	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("await did not return after cancellation")
	}
}

func TestResolveWithoutWaiter(t *testing.T) {
	awaiter := NewAwaiter()

	assert.False(t, awaiter.Resolve("m1"))
}

func TestPendingCountsArmedWaiters(t *testing.T) {
	awaiter := NewAwaiter()
	assert.Equal(t, 0, awaiter.Pending())

	done := make(chan error, 1)
	go func() {
		done <- awaiter.Await(context.Background(), "m1", time.Minute)
	}()

	require.Eventually(t, func() bool { return awaiter.Pending() == 1 },
		time.Second, time.Millisecond)

	awaiter.Resolve("m1")
	require.NoError(t, <-done)
	assert.Equal(t, 0, awaiter.Pending())
}
