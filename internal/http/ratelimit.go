package http

import (
	"sync"
	"time"
)

// rateLimiter is a simple in-memory per-client limiter. Stale entries are
// swept lazily on the request path, so it needs no goroutine.
type rateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientInfo
	lastSweep time.Time
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

const (
	rateLimitPerMinute = 60
	sweepInterval      = 5 * time.Minute
	staleAfter         = 10 * time.Minute
)

func newRateLimiter() *rateLimiter {
	return &rateLimiter{
		clients:   make(map[string]*clientInfo),
		lastSweep: time.Now(),
	}
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastSweep) > sweepInterval {
		rl.sweepLocked(now)
	}

	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &clientInfo{
			lastRequest: now,
			requests:    1,
		}
		return true
	}

	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	client.requests++
	client.lastRequest = now
	return client.requests <= rateLimitPerMinute
}

func (rl *rateLimiter) sweepLocked(now time.Time) {
	cutoff := now.Add(-staleAfter)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
	rl.lastSweep = now
}
