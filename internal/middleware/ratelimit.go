package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const maxTrackedIPs = 10000

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	ips    map[string]*rate.Limiter
	mu     sync.Mutex
	r      rate.Limit
	b      int
	logger *slog.Logger
}

func NewIPRateLimiter(r rate.Limit, b int, logger *slog.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		ips:    make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
		logger: logger,
	}
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, exists := i.ips[ip]
	if !exists {
		limiter = rate.NewLimiter(i.r, i.b)
		i.ips[ip] = limiter
	}

	return limiter
}

// StartCleanup resets the map whenever it grows past maxTrackedIPs, until ctx
// is done.
func (i *IPRateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				i.mu.Lock()
				if len(i.ips) > maxTrackedIPs {
					i.logger.Info("Cleaning up rate limiter map", "count", len(i.ips))
					i.ips = make(map[string]*rate.Limiter)
				}
				i.mu.Unlock()
			}
		}
	}()
}

func (i *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !i.GetLimiter(ctx.ClientIP()).Allow() {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		ctx.Next()
	}
}
