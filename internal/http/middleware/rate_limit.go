package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/diagnosis/car-rental/internal/http/response"
	"github.com/diagnosis/car-rental/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines rate limiting parameters
type RateLimitConfig struct {
	Requests  int                            // Max requests per window
	Window    time.Duration                  // Time window duration
	KeyPrefix string                         // e.g. "rl:auth:"
	KeyFunc   func(r *http.Request) []string // Function to generate rate limit keys
	SkipFunc  func(r *http.Request) bool     // Function to skip rate limiting
}

// RateLimiter is a fixed-window limiter backed by Redis. A nil client
// disables it.
type RateLimiter struct {
	rdb    redis.Cmdable
	config RateLimitConfig
	now    func() time.Time
}

func NewRateLimiter(rdb redis.Cmdable, config RateLimitConfig) *RateLimiter {
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "rl:"
	}
	if config.KeyFunc == nil {
		config.KeyFunc = ClientIPKeyFunc
	}
	return &RateLimiter{rdb: rdb, config: config, now: time.Now}
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rl.rdb == nil || rl.config.Requests <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			if rl.config.SkipFunc != nil && rl.config.SkipFunc(r) {
				next.ServeHTTP(w, r)
				return
			}

			for _, key := range rl.config.KeyFunc(r) {
				allowed, retryAfter := rl.checkRateLimit(r.Context(), key)
				if !allowed {
					w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Round(time.Second)/time.Second)))
					response.RateLimit(w, "Too many requests. Try again later.")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// checkRateLimit counts the request in the current window. Redis errors fail open.
func (rl *RateLimiter) checkRateLimit(ctx context.Context, key string) (bool, time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	now := rl.now()
	windowKey := rl.windowKey(key, now)

	pipe := rl.rdb.Pipeline()
	cnt := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, rl.config.Window*2)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.WarnContext(ctx, "Rate limiter unavailable, allowing request", "error", err)
		return true, 0
	}

	if cnt.Val() > int64(rl.config.Requests) {
		remain := rl.config.Window - time.Duration(now.UnixNano()%int64(rl.config.Window))
		return false, remain
	}
	return true, 0
}

// windowKey is prefix + sha256(key) + window index.
func (rl *RateLimiter) windowKey(key string, now time.Time) string {
	sum := sha256.Sum256([]byte(key))
	window := now.UnixNano() / int64(rl.config.Window)
	return fmt.Sprintf("%s%x:%d", rl.config.KeyPrefix, sum[:8], window)
}

// ClientIPKeyFunc limits by client IP.
func ClientIPKeyFunc(r *http.Request) []string {
	if ip := getClientIP(r); ip != "" {
		return []string{"ip:" + ip}
	}
	return nil
}

// getClientIP extracts the real client IP from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take the first IP if there are multiple
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fall back to RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
