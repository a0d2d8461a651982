package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const clientIdleTTL = 10 * time.Minute

// RateLimiter implements per-client token bucket rate limiting keyed by the
// remote IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	stop    chan struct{}
	once    sync.Once
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter with background cleanup of idle clients.
// Call Stop() on shutdown.
func NewRateLimiter(cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		stop:    make(chan struct{}),
	}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the background cleanup goroutine. Safe to call twice.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit returns middleware allowing rps requests per second per client with
// the given burst. Excess requests get 429 with Retry-After.
func (rl *RateLimiter) Limit(rps float64, burst int) Middleware {
	retryAfter := strconv.Itoa(int(math.Ceil(1 / rps)))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.limiter(clientKey(r), rps, burst).Allow() {
				w.Header().Set("Retry-After", retryAfter)
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) limiter(key string, rps float64, burst int) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
		rl.clients[key] = c
	}
	c.lastSeen = time.Now()
	return c.limiter
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, c := range rl.clients {
		if now.Sub(c.lastSeen) > clientIdleTTL {
			delete(rl.clients, key)
		}
	}
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.evictIdle(now)
		}
	}
}

// clientKey returns the remote IP without its port.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
