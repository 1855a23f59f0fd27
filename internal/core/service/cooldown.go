package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Cooldown suppresses repeated chat-trigger replies per user within a short
// window. Entries are evicted by a periodic sweep instead of growing until a
// daily clear.
type Cooldown struct {
	mutex  sync.Mutex
	last   map[string]time.Time
	counts map[string]int
	window time.Duration
}

func NewCooldown(ctx context.Context, window, sweepInterval time.Duration) *Cooldown {
	c := &Cooldown{
		last:   make(map[string]time.Time),
		counts: make(map[string]int),
		window: window,
	}

	go c.sweep(ctx, sweepInterval)

	return c
}

// Allow reports whether the user is outside the cooldown window. When
// allowed, the user's running trigger count is incremented and returned.
func (c *Cooldown) Allow(userID string) (int, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	if last, ok := c.last[userID]; ok && now.Sub(last) < c.window {
		c.last[userID] = now
		return c.counts[userID], false
	}

	c.last[userID] = now
	c.counts[userID]++

	return c.counts[userID], true
}

func (c *Cooldown) sweep(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			c.mutex.Lock()
			cutoff := time.Now().Add(-interval)
			for userID, last := range c.last {
				if last.Before(cutoff) {
					delete(c.last, userID)
					delete(c.counts, userID)
				}
			}
			c.mutex.Unlock()
			log.Debug().Msg("cooldown sweep complete")
		case <-ctx.Done():
			log.Debug().Msg("stopping cooldown sweep")
			return
		}
	}
}
