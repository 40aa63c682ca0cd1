package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

// RateLimiter keeps one token bucket per caller: the authenticated user when
// there is one, the client IP otherwise. Buckets idle for longer than the
// sweep window are dropped.
type RateLimiter struct {
	mu      sync.Mutex
	callers map[string]*caller

	limit rate.Limit
	burst int
	now   func() time.Time
}

type caller struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &RateLimiter{
		callers: make(map[string]*caller),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		now:     time.Now,
	}
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.callers[key]
	if !ok {
		c = &caller{lim: rate.NewLimiter(rl.limit, rl.burst)}
		rl.callers[key] = c
	}
	c.lastSeen = rl.now()
	return c.lim
}

// Sweep drops callers not seen within idle and returns how many it removed.
func (rl *RateLimiter) Sweep(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idle)
	removed := 0
	for key, c := range rl.callers {
		if c.lastSeen.Before(cutoff) {
			delete(rl.callers, key)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context, every, idle time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.Sweep(idle); n > 0 {
				log.Debug("rate limiter swept", zap.Int("removed", n))
			}
		}
	}
}

func (rl *RateLimiter) Middleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := UserID(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		if !rl.get(key).Allow() {
			log.Warn("rate limit exceeded",
				zap.String("key", key),
				zap.String("path", c.FullPath()),
			)
			httperr.TooManyRequests(c, "rate_limited", "Too many requests. Try again later.")
			return
		}

		c.Next()
	}
}
