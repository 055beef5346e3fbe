package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// rateLimiterEntry tracks a rate limiter and its last access time.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
	mu         sync.Mutex
}

// rateLimiterStore manages per-account rate limiters with automatic cleanup.
type rateLimiterStore struct {
	limiters sync.Map // accountID (string) -> *rateLimiterEntry
	rps      float64
	burst    int
}

// RateLimitMiddleware provides per-account rate limiting using the token
// bucket algorithm.
//
// This middleware MUST be used after AuthenticationMiddleware, as it keys
// limiters by the authenticated account ID. Requests without an account in
// context are allowed through (unauthenticated routes carry their own limits).
//
// Rate limit exceeded responses include a Retry-After header.
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &rateLimiterStore{
		rps:   rps,
		burst: burst,
	}

	// Background cleanup of limiters idle for over an hour.
	ctx, cancel := context.WithCancel(context.Background())
	go store.cleanupStale(ctx, 5*time.Minute)
	_ = cancel // cleanup runs for the lifetime of the process

	return func(c *gin.Context) {
		account, ok := GetAccount(c.Request.Context())
		if !ok {
			c.Next()
			return
		}

		limiter := store.getLimiter(account.ID.String())
		if !limiter.Allow() {
			logger.Debug("rate limit exceeded",
				slog.String("account_id", account.ID.String()))
			c.Header("Retry-After", "1")
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate_limit_exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getLimiter returns the rate limiter for an account, creating one if needed.
func (s *rateLimiterStore) getLimiter(accountID string) *rate.Limiter {
	now := time.Now()

	if value, ok := s.limiters.Load(accountID); ok {
		entry := value.(*rateLimiterEntry)
		entry.mu.Lock()
		entry.lastAccess = now
		entry.mu.Unlock()
		return entry.limiter
	}

	entry := &rateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	}
	actual, _ := s.limiters.LoadOrStore(accountID, entry)
	stored := actual.(*rateLimiterEntry)
	stored.mu.Lock()
	stored.lastAccess = now
	stored.mu.Unlock()
	return stored.limiter
}

// cleanupStale periodically removes limiters that have not been used recently.
func (s *rateLimiterStore) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Remove limiters not accessed in last hour
			threshold := time.Now().Add(-1 * time.Hour)
			s.limiters.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimiterEntry)
				entry.mu.Lock()
				shouldDelete := entry.lastAccess.Before(threshold)
				entry.mu.Unlock()

				if shouldDelete {
					s.limiters.Delete(key)
				}
				return true
			})
		}
	}
}
