package httpserver

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyRateLimiter provides per-key rate limiting using token buckets.
// Buckets idle for longer than limiterIdleTTL are dropped on the next sweep.
type keyRateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newKeyRateLimiter(reqPerMinute float64) *keyRateLimiter {
	burst := int(reqPerMinute / 6) // 10 seconds worth
	if burst < 1 {
		burst = 1
	}
	return &keyRateLimiter{
		buckets:   make(map[string]*bucket),
		rate:      rate.Limit(reqPerMinute / 60), // convert per-minute to per-second
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow checks if the given key is within its rate limit.
func (l *keyRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	now := l.now()
	l.sweepLocked(now)
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	l.mu.Unlock()
	return b.limiter.AllowN(now, 1)
}

// RetryAfter returns an estimate of when the next request will be allowed.
func (l *keyRateLimiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	b, ok := l.buckets[key]
	now := l.now()
	l.mu.Unlock()
	if !ok {
		return 0
	}
	reservation := b.limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	reservation.CancelAt(now)
	return delay
}

// Len returns the number of tracked keys.
func (l *keyRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *keyRateLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < limiterIdleTTL {
		return
	}
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) >= limiterIdleTTL {
			delete(l.buckets, k)
		}
	}
	l.lastSweep = now
}

// ipRateLimiter is chi middleware that rate limits by client IP.
type ipRateLimiter struct {
	inner *keyRateLimiter
}

func newIPRateLimiter(reqPerMinute float64) *ipRateLimiter {
	return &ipRateLimiter{inner: newKeyRateLimiter(reqPerMinute)}
}

// Middleware returns a chi-compatible middleware that rate limits by IP.
func (l *ipRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr // chi RealIP middleware has already normalised this
		if !l.inner.Allow(ip) {
			retryAfter := l.inner.RetryAfter(ip)
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())+1))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
