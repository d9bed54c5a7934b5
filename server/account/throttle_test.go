package account

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func fixedThrottle(limit rate.Limit, burst int) (*attemptThrottle, *time.Time) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	throttle := newAttemptThrottle(limit, burst)
	throttle.now = func() time.Time { return now }
	return throttle, &now
}

func TestThrottleBurst(t *testing.T) {
	throttle, now := fixedThrottle(1, 2)
	assert.True(t, throttle.allow("10.0.0.1"))
	assert.True(t, throttle.allow("10.0.0.1"))
	assert.False(t, throttle.allow("10.0.0.1"))
	assert.True(t, throttle.allow("10.0.0.2"), "clients are limited separately")

	*now = now.Add(time.Second)
	assert.True(t, throttle.allow("10.0.0.1"))
}

func TestThrottleFailuresSlowDown(t *testing.T) {
	throttle, _ := fixedThrottle(1, 2)
	throttle.fail("10.0.0.1")
	assert.Equal(t, rate.Limit(0.5), throttle.client("10.0.0.1").limiter.Limit())
	throttle.fail("10.0.0.1")
	assert.Equal(t, rate.Limit(0.25), throttle.client("10.0.0.1").limiter.Limit())

	for range 20 {
		throttle.fail("10.0.0.1")
	}
	assert.Equal(t, minAttemptRate, throttle.client("10.0.0.1").limiter.Limit())

	throttle.succeed("10.0.0.1")
	assert.Equal(t, rate.Limit(1), throttle.client("10.0.0.1").limiter.Limit())
}

func TestThrottleForgetsIdleClients(t *testing.T) {
	throttle, now := fixedThrottle(1, 1)
	throttle.fail("10.0.0.1")
	*now = now.Add(clientIdleTime + time.Minute)
	throttle.allow("10.0.0.2")
	_, ok := throttle.clients["10.0.0.1"]
	assert.False(t, ok)
}

func TestThrottleMiddleware(t *testing.T) {
	throttle, _ := fixedThrottle(1, 1)
	h := throttle.middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req.RemoteAddr = "10.0.0.1:6666"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
