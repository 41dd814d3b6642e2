package middleware

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cinema-api/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// tokenBucket refills one token per interval up to capacity and takes one per
// request. Returns {allowed, remaining, retry_after_ms}.
var tokenBucket = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local interval_ms = tonumber(ARGV[3])
	local ttl_seconds = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local intervals = math.floor(elapsed / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + intervals)
			last_refill = last_refill + (intervals * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

// RateLimit throttles a route per user (or per client IP for anonymous
// callers) with a token bucket kept in Redis. It is a no-op when disabled or
// without a Redis client, and fails open on Redis errors.
func RateLimit(cfg utils.RateLimitConfig, rdb *redis.Client, logger *zap.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled || rdb == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateKey(cfg.Prefix, r)

			vals, err := tokenBucket.Run(r.Context(), rdb, []string{key},
				time.Now().UnixMilli(),
				cfg.Capacity,
				cfg.RefillInterval.Milliseconds(),
				int64(cfg.TTL/time.Second),
			).Int64Slice()
			if err != nil || len(vals) != 3 {
				logger.Warn("Rate limiter unavailable, allowing request",
					zap.Error(err),
					zap.String("key", key))
				next.ServeHTTP(w, r)
				return
			}

			allowed, remaining, retryMs := vals[0] == 1, vals[1], vals[2]

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if !allowed {
				secs := int(math.Ceil(float64(retryMs) / 1000.0))
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				logger.Info("Rate limit exceeded", zap.String("key", key), zap.Int64("retry_after_ms", retryMs))
				utils.ResponseTooManyRequests(w, fmt.Sprintf("Request was throttled. Expected available in %d seconds.", secs))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rateKey(prefix string, r *http.Request) string {
	subject := "ip:" + clientIP(r)
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		subject = "user:" + userID.String()
	}
	return strings.Join([]string{prefix, subject, r.Method + " " + r.URL.Path}, ":")
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return "unknown"
	}
	return host
}
