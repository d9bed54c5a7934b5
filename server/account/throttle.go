package account

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	decreaseFactor = 0.5 // every failed attempt halves how often a client may try
	minAttemptRate = rate.Limit(1.0 / 60)
	clientIdleTime = 30 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// attemptThrottle limits login and register attempts per client address.
// Failures slow a client down and a success restores the normal rate
type attemptThrottle struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

func newAttemptThrottle(limit rate.Limit, burst int) *attemptThrottle {
	return &attemptThrottle{
		clients: map[string]*clientLimiter{},
		limit:   limit,
		burst:   burst,
		now:     time.Now,
	}
}

func (t *attemptThrottle) client(key string) *clientLimiter {
	now := t.now()
	for k, c := range t.clients {
		if now.Sub(c.lastSeen) > clientIdleTime {
			delete(t.clients, k)
		}
	}
	c, ok := t.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.clients[key] = c
	}
	c.lastSeen = now
	return c
}

func (t *attemptThrottle) allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client(key).limiter.AllowN(t.now(), 1)
}

func (t *attemptThrottle) fail(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	limiter := t.client(key).limiter
	limiter.SetLimitAt(t.now(), max(limiter.Limit()*(1-decreaseFactor), minAttemptRate))
}

func (t *attemptThrottle) succeed(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.client(key).limiter.SetLimitAt(t.now(), t.limit)
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (t *attemptThrottle) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.allow(clientKey(r)) {
			http.Error(w, "Too many attempts, try again later", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
