package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultRateLimit is the default rate limit per minute
	DefaultRateLimit = 100
	// DefaultBurstSize is the default burst size
	DefaultBurstSize = 10
	// CleanupInterval is how often idle limiters are evicted
	CleanupInterval = 5 * time.Minute
	// LimiterTTL is the time-to-live for inactive limiters
	LimiterTTL = 10 * time.Minute
)

// RateLimiter manages per-user rate limiting
type RateLimiter struct {
	limiters          map[string]*limiterEntry
	mu                sync.Mutex
	requestsPerMinute int
	perSecond         rate.Limit
	burstSize         int
	now               func() time.Time
	stopCh            chan struct{}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LimitState is what the rate limit headers report for one user
type LimitState struct {
	Remaining int
	Reset     time.Time // when the bucket is full again
}

// NewRateLimiter creates a new RateLimiter with default settings
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(DefaultRateLimit, DefaultBurstSize)
}

// NewRateLimiterWithConfig creates a RateLimiter with custom configuration
func NewRateLimiterWithConfig(requestsPerMinute int, burstSize int) *RateLimiter {
	rl := &RateLimiter{
		limiters:          make(map[string]*limiterEntry),
		requestsPerMinute: requestsPerMinute,
		perSecond:         rate.Limit(float64(requestsPerMinute) / 60),
		burstSize:         burstSize,
		now:               time.Now,
		stopCh:            make(chan struct{}),
	}

	go rl.runEviction(CleanupInterval)

	return rl
}

// Allow checks if a request from the given user is allowed
func (r *RateLimiter) Allow(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	entry, exists := r.limiters[userID]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(r.perSecond, r.burstSize)}
		r.limiters[userID] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

// State reports the tokens left for a user and when the bucket refills.
// Unknown users have a full bucket.
func (r *RateLimiter) State(userID string) LimitState {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	entry, exists := r.limiters[userID]
	if !exists {
		return LimitState{Remaining: r.burstSize, Reset: now}
	}

	tokens := entry.limiter.TokensAt(now)
	if tokens < 0 {
		tokens = 0
	}
	missing := float64(r.burstSize) - tokens
	refill := time.Duration(math.Ceil(missing / float64(r.perSecond) * float64(time.Second)))

	return LimitState{Remaining: int(tokens), Reset: now.Add(refill)}
}

// evictStale drops limiters idle for longer than LimiterTTL and returns how
// many were removed. An evicted user starts again with a full bucket.
func (r *RateLimiter) evictStale(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for userID, entry := range r.limiters {
		if now.Sub(entry.lastSeen) > LimiterTTL {
			delete(r.limiters, userID)
			evicted++
		}
	}
	return evicted
}

func (r *RateLimiter) runEviction(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := r.evictStale(r.now()); n > 0 {
				log.Debug().Int("evicted", n).Msg("Evicted idle rate limiters")
			}
		case <-r.stopCh:
			return
		}
	}
}

// Stop stops the eviction goroutine
func (r *RateLimiter) Stop() {
	close(r.stopCh)
}

// RateLimitMiddleware returns an Echo middleware that applies rate limiting
// per authenticated user. It must run after authentication.
func RateLimitMiddleware(rl *RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := GetUserID(c)
			if userID == "" {
				// Unauthenticated requests are rejected by the handler
				return next(c)
			}

			limit := strconv.Itoa(rl.requestsPerMinute)

			if !rl.Allow(userID) {
				state := rl.State(userID)
				retryAfter := int(math.Ceil(state.Reset.Sub(rl.now()).Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}

				c.Response().Header().Set("X-RateLimit-Limit", limit)
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				c.Response().Header().Set("X-RateLimit-Reset", strconv.FormatInt(state.Reset.Unix(), 10))
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))

				log.Warn().
					Str("user_id", userID).
					Int("retry_after", retryAfter).
					Msg("Rate limit exceeded")

				return rateLimitError(c, retryAfter)
			}

			state := rl.State(userID)
			c.Response().Header().Set("X-RateLimit-Limit", limit)
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(state.Remaining))
			c.Response().Header().Set("X-RateLimit-Reset", strconv.FormatInt(state.Reset.Unix(), 10))

			return next(c)
		}
	}
}
