package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/customer/login", nil)
	r.RemoteAddr = "10.0.0.5:41234"
	assert.Equal(t, "10.0.0.5", getClientIP(r))

	r.Header.Set("X-Real-IP", "192.168.1.9")
	assert.Equal(t, "192.168.1.9", getClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", getClientIP(r))
}

func TestRateLimiterWithoutRedisAllows(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{Requests: 1, Window: time.Minute})
	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customer/login", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestWindowKey(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{Requests: 10, Window: time.Minute, KeyPrefix: "rl:auth:"})
	t0 := time.Date(2024, 1, 1, 10, 0, 5, 0, time.UTC)

	k1 := rl.windowKey("ip:1.2.3.4", t0)
	assert.True(t, strings.HasPrefix(k1, "rl:auth:"))
	assert.NotContains(t, k1, "1.2.3.4")
	assert.Equal(t, k1, rl.windowKey("ip:1.2.3.4", t0.Add(50*time.Second)))
	assert.NotEqual(t, k1, rl.windowKey("ip:1.2.3.4", t0.Add(2*time.Minute)))
	assert.NotEqual(t, k1, rl.windowKey("ip:1.2.3.5", t0))
}

func limitedHandler(t *testing.T, requests int) (http.Handler, *miniredis.Miniredis, *RateLimiter) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	rl := NewRateLimiter(rdb, RateLimitConfig{Requests: requests, Window: time.Minute, KeyPrefix: "rl:auth:"})
	rl.now = func() time.Time { return time.Date(2024, 1, 1, 10, 0, 5, 0, time.UTC) }
	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, mr, rl
}

func loginFrom(h http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/customer/login", nil)
	req.RemoteAddr = ip + ":5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	h, mr, _ := limitedHandler(t, 2)

	assert.Equal(t, http.StatusNoContent, loginFrom(h, "10.0.0.1").Code)
	assert.Equal(t, http.StatusNoContent, loginFrom(h, "10.0.0.1").Code)

	rec := loginFrom(h, "10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "55", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"message":"Too many requests. Try again later."}`, rec.Body.String())

	// Other clients keep their own budget.
	assert.Equal(t, http.StatusNoContent, loginFrom(h, "10.0.0.2").Code)

	keys := mr.Keys()
	require.Len(t, keys, 2)
	for _, k := range keys {
		assert.True(t, strings.HasPrefix(k, "rl:auth:"), k)
		assert.Equal(t, 2*time.Minute, mr.TTL(k))
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	h, mr, _ := limitedHandler(t, 1)
	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, loginFrom(h, "10.0.0.1").Code)
	}
}

func TestRateLimiterNextWindowResets(t *testing.T) {
	h, _, rl := limitedHandler(t, 1)

	assert.Equal(t, http.StatusNoContent, loginFrom(h, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(h, "10.0.0.1").Code)

	rl.now = func() time.Time { return time.Date(2024, 1, 1, 10, 1, 5, 0, time.UTC) }
	assert.Equal(t, http.StatusNoContent, loginFrom(h, "10.0.0.1").Code)
}
