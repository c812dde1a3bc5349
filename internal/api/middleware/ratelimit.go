package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RuanLopes1350/AnotaAi/internal/api/shared"
	"github.com/RuanLopes1350/AnotaAi/internal/platform/logger"
	"github.com/RuanLopes1350/AnotaAi/internal/redact"
)

// rateLimitKeyPrefix namespaces the per-client buckets in Redis.
const rateLimitKeyPrefix = "anotaai:ratelimit:"

// tokenBucketLua refills the bucket for the elapsed time, then takes one
// token if available. Returns {allowed, wait_ms, tokens}.
const tokenBucketLua = `
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])

if rate <= 0 or burst <= 0 then
  return {1, 0, burst}
end

local data = redis.call("HMGET", key, "tokens", "ts")
local tokens = tonumber(data[1])
local ts = tonumber(data[2])
if tokens == nil then
  tokens = burst
end
if ts == nil then
  ts = now
end

local delta = math.max(0, now - ts)
tokens = math.min(burst, tokens + (delta * rate) / 1000.0)

local allowed = tokens >= requested
local wait_ms = 0
if allowed then
  tokens = tokens - requested
else
  wait_ms = math.ceil((requested - tokens) * 1000.0 / rate)
end

redis.call("HSET", key, "tokens", tokens, "ts", now)
redis.call("PEXPIRE", key, math.ceil((burst / rate) * 1000.0 * 2))

return {allowed and 1 or 0, wait_ms, tokens}
`

// RateLimiter is a per-client token bucket kept in Redis, so that every
// instance of the API shares the same budget.
type RateLimiter struct {
	rdb    redis.Scripter
	rate   float64
	burst  float64
	script *redis.Script
	now    func() time.Time
	logger *slog.Logger
}

// NewRateLimiter creates a limiter allowing rate requests per second per
// client with bursts of up to burst requests.
func NewRateLimiter(rdb redis.Scripter, rate float64, burst int, logger *slog.Logger) *RateLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateLimiter{
		rdb:    rdb,
		rate:   rate,
		burst:  float64(burst),
		script: redis.NewScript(tokenBucketLua),
		now:    time.Now,
		logger: logger.With(slog.String("component", "rate_limiter")),
	}
}

// Allow takes one token from the bucket of key. When the bucket is empty it
// returns false and how long until a token is available.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	res, err := l.script.Run(ctx, l.rdb, []string{rateLimitKeyPrefix + key},
		l.rate, l.burst, l.now().UnixMilli(), 1).Result()
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit eval: %w", err)
	}

	values, ok := res.([]interface{})
	if !ok || len(values) < 2 {
		return false, 0, fmt.Errorf("ratelimit invalid result: %v", res)
	}
	return toInt64(values[0]) == 1, time.Duration(toInt64(values[1])) * time.Millisecond, nil
}

// Middleware rejects clients that exhausted their bucket with 429 and a
// Retry-After header. Redis failures let the request through.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, wait, err := l.Allow(r.Context(), clientKey(r))
		if err != nil {
			logger.FromContextOrDefault(r.Context(), l.logger).WarnContext(r.Context(),
				"rate limiter unavailable, allowing request",
				slog.String("error", redact.Error(err)))
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests, "too many requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the client by IP. RemoteAddr has already been
// rewritten by chi's RealIP middleware when a proxy header is present.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfterSeconds(wait time.Duration) int {
	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

func toInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if parsed, err := strconv.ParseInt(t, 10, 64); err == nil {
			return parsed
		}
	}
	return 0
}
