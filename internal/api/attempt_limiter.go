package api

import (
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// attemptLimiter blocks a client after limit failed password checks inside a
// sliding window.
type attemptLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	failures map[string][]time.Time
}

func newAttemptLimiter(limit int, window time.Duration) *attemptLimiter {
	return &attemptLimiter{
		limit:    limit,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

// blockedFor reports how long key stays blocked at now, zero when it may try.
func (limiter *attemptLimiter) blockedFor(key string, now time.Time) time.Duration {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	recent := limiter.prune(key, now)
	if len(recent) < limiter.limit {
		return 0
	}
	// The block lifts when enough old failures leave the window.
	return recent[len(recent)-limiter.limit].Add(limiter.window).Sub(now)
}

func (limiter *attemptLimiter) fail(key string, now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	limiter.failures[key] = append(limiter.prune(key, now), now)
}

func (limiter *attemptLimiter) forget(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.failures, key)
}

func (limiter *attemptLimiter) prune(key string, now time.Time) []time.Time {
	threshold := now.Add(-limiter.window)
	kept := slices.DeleteFunc(limiter.failures[key], func(at time.Time) bool {
		return !at.After(threshold)
	})
	if len(kept) == 0 {
		delete(limiter.failures, key)
		return nil
	}
	limiter.failures[key] = kept
	return kept
}

func requestLimiterKey(c *fiber.Ctx) string {
	if key := strings.TrimSpace(c.IP()); key != "" {
		return key
	}
	return "unknown"
}

func setRetryAfter(c *fiber.Ctx, wait time.Duration) {
	seconds := int((wait + time.Second - 1) / time.Second)
	c.Set(fiber.HeaderRetryAfter, strconv.Itoa(max(seconds, 1)))
}
