package auth

import (
	"sync"

	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter map; idle full buckets are pruned past it.
const maxTrackedClients = 10000

// LoginLimiter is a per-client token bucket limiter for login attempts.
// It is safe for concurrent use.
type LoginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewLoginLimiter creates a limiter allowing ratePerSecond sustained attempts
// per client with the given burst. A non-positive rate disables limiting.
//
// Example configurations:
//   - NewLoginLimiter(0.2, 5): five quick attempts, then one every five seconds
//   - NewLoginLimiter(0, 0): unlimited
func NewLoginLimiter(ratePerSecond float64, burst int) *LoginLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &LoginLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(ratePerSecond),
		burst:    burst,
	}
}

// Allow reports whether client may attempt a login now, consuming one token if so.
func (l *LoginLimiter) Allow(client string) bool {
	if l == nil || l.limit <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[client]
	if !ok {
		if len(l.limiters) >= maxTrackedClients {
			l.prune()
		}
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[client] = lim
	}
	return lim.Allow()
}

// Tracked returns the number of clients currently held in memory.
func (l *LoginLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// prune drops clients whose bucket has refilled completely. Callers hold mu.
func (l *LoginLimiter) prune() {
	for client, lim := range l.limiters {
		if lim.Tokens() >= float64(l.burst) {
			delete(l.limiters, client)
		}
	}
}
