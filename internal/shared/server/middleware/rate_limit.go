package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Suhaibk137/atsclaude/internal/shared/telemetry"
)

// sweepInterval bounds how often idle buckets are dropped.
const sweepInterval = time.Minute

// RateLimitRule is a token bucket refilled at Rate tokens per second. A rule
// with a non-positive Rate or Burst admits everything.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

func (r RateLimitRule) enabled() bool {
	return r.Rate > 0 && r.Burst > 0
}

// fillTime is how long an empty bucket takes to refill completely.
func (r RateLimitRule) fillTime() time.Duration {
	return time.Duration(float64(r.Burst) / r.Rate * float64(time.Second))
}

// RateLimiter keeps one bucket per client key under a single rule.
type RateLimiter struct {
	rule      RateLimitRule
	now       func() time.Time
	mu        sync.Mutex
	buckets   map[string]*rateBucket
	lastSweep time.Time
}

type rateBucket struct {
	tokens float64
	last   time.Time
}

func NewRateLimiter(rule RateLimitRule, now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		rule:    rule,
		now:     now,
		buckets: make(map[string]*rateBucket),
	}
}

// Allow takes a token for key. When the bucket is empty it reports how long
// until the next token is available.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	if l == nil || !l.rule.enabled() {
		return true, 0
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &rateBucket{tokens: float64(l.rule.Burst), last: now}
		l.buckets[key] = b
	}
	if elapsed := now.Sub(b.last).Seconds(); elapsed > 0 {
		b.tokens = math.Min(float64(l.rule.Burst), b.tokens+elapsed*l.rule.Rate)
		b.last = now
	}
	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}

	wait := (1 - b.tokens) / l.rule.Rate
	return false, time.Duration(math.Ceil(wait*1000)) * time.Millisecond
}

// sweep drops buckets that have been idle long enough to be full again; a
// fresh bucket behaves identically. Callers hold l.mu.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now
	idle := l.rule.fillTime()
	for key, b := range l.buckets {
		if now.Sub(b.last) >= idle {
			delete(l.buckets, key)
		}
	}
}

// RateLimit admits requests while the client IP has tokens and answers 429
// with Retry-After otherwise. scope names the limited route in logs.
func RateLimit(scope string, limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter := limiter.Allow(c.ClientIP())
		if allowed {
			c.Next()
			return
		}

		retryAfterMs := retryAfter.Milliseconds()
		if retryAfterMs <= 0 {
			retryAfterMs = 1000
		}
		c.Header("Retry-After", strconv.FormatInt((retryAfterMs+999)/1000, 10))
		telemetry.Warn("request.rate_limited", map[string]any{
			"request_id":     RequestIDFromContext(c),
			"scope":          scope,
			"client_ip":      c.ClientIP(),
			"retry_after_ms": retryAfterMs,
		})
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":        "Too many requests, retry later",
			"retryAfterMs": retryAfterMs,
		})
	}
}
