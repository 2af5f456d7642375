package security

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

// RateLimiter counts requests per caller in Redis with a fixed one minute
// window. It fronts the OTP endpoints, where every request costs an SMS.
type RateLimiter struct {
	redis *redis.Client
}

func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{redis: redisClient}
}

// Limit wraps a handler, allowing maxPerMinute requests per client for the
// named scope before replying 429.
func (r *RateLimiter) Limit(scope string, maxPerMinute int, next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		key := fmt.Sprintf("ratelimit:%s:%s", scope, r.identify(e))
		ctx := e.Request.Context()

		count, err := r.redis.Incr(ctx, key).Result()
		if err == nil {
			if count == 1 {
				r.redis.Expire(ctx, key, time.Minute)
			}
			if count > int64(maxPerMinute) {
				return apis.NewTooManyRequestsError("Rate limit exceeded. Please try again later.", nil)
			}
		}
		// A Redis hiccup must not take the endpoint down with it.

		if r.isSuspiciousUserAgent(e.Request.Header.Get("User-Agent")) {
			return apis.NewForbiddenError("Access denied", nil)
		}

		return next(e)
	}
}

func (r *RateLimiter) identify(e *core.RequestEvent) string {
	if ip := e.Request.Header.Get("X-Forwarded-For"); ip != "" {
		parts := strings.Split(ip, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(e.Request.RemoteAddr)
	if err != nil {
		return e.Request.RemoteAddr
	}
	return host
}

func (r *RateLimiter) isSuspiciousUserAgent(ua string) bool {
	suspicious := []string{"bot", "crawler", "spider", "scraper"}
	for _, pattern := range suspicious {
		if strings.Contains(strings.ToLower(ua), pattern) {
			return true
		}
	}
	return false
}
