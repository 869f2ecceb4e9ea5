package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/platform/metrics"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an unused per-user window is kept.
const limiterIdleTTL = time.Hour

// RateLimiter throttles requests per authenticated user with a fixed window:
// at most requests calls between windowStart and windowStart+window, after
// which the budget resets in full. Place it after Authenticate.
type RateLimiter struct {
	requests int
	window   time.Duration
	metrics  *metrics.Metrics
	now      func() time.Time

	mu          sync.Mutex
	limiters    map[uuid.UUID]*userWindow
	lastCleanup time.Time
}

// userWindow is one user's current window. budget is a non-refilling limiter
// (zero rate, burst = requests), so it holds exactly the calls left.
type userWindow struct {
	start    time.Time
	budget   *rate.Limiter
	lastSeen time.Time
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimitClock replaces time.Now.
func WithRateLimitClock(now func() time.Time) RateLimiterOption {
	return func(l *RateLimiter) { l.now = now }
}

// WithRateLimitMetrics counts rejected requests.
func WithRateLimitMetrics(m *metrics.Metrics) RateLimiterOption {
	return func(l *RateLimiter) { l.metrics = m }
}

// NewRateLimiter allows each user requests calls per window.
func NewRateLimiter(requests int, window time.Duration, opts ...RateLimiterOption) *RateLimiter {
	if requests < 1 || window <= 0 {
		// ALLOW-PANIC: Constructor enforcing valid configuration
		panic("rate limiter needs a positive request count and window")
	}

	l := &RateLimiter{
		requests: requests,
		window:   window,
		now:      time.Now,
		limiters: make(map[uuid.UUID]*userWindow),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastCleanup = l.now()
	return l
}

// allow spends one call from the user's current window. When the window is
// exhausted it returns false and the time until the window resets.
func (l *RateLimiter) allow(userID uuid.UUID, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Sweep idle users at most once per TTL
	if now.Sub(l.lastCleanup) > limiterIdleTTL {
		for id, uw := range l.limiters {
			if now.Sub(uw.lastSeen) > limiterIdleTTL {
				delete(l.limiters, id)
			}
		}
		l.lastCleanup = now
	}

	uw, ok := l.limiters[userID]
	if !ok || !now.Before(uw.start.Add(l.window)) {
		// First request or expired window: open a fresh one at now
		uw = &userWindow{start: now, budget: rate.NewLimiter(0, l.requests)}
		l.limiters[userID] = uw
	}
	uw.lastSeen = now

	if uw.budget.AllowN(now, 1) {
		return true, 0
	}
	return false, uw.start.Add(l.window).Sub(now)
}

// Limit rejects requests over the user's budget with 429 and a Retry-After
// header. Requests without a user ID pass through untouched.
func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := shared.UserIDFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		allowed, retryAfter := l.allow(userID, l.now())
		if !allowed {
			if l.metrics != nil {
				l.metrics.RecordRateLimited()
			}
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests, "Too many requests", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
