package middleware

import (
	"sync"
	"time"

	"github.com/ahmetcinarr/selvigsm/internal/apperr"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type ipRateLimiter struct {
	mu    sync.Mutex
	ips   map[string]*rate.Limiter
	rate  rate.Limit
	burst int
}

func (rl *ipRateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.ips[ip]; ok {
		return limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.ips[ip] = limiter
	return limiter
}

// RateLimit throttles per client IP. Rejected requests get 429 with a
// retry-after hint.
func RateLimit(rps float64, burst int) echo.MiddlewareFunc {
	rl := &ipRateLimiter{
		ips:   make(map[string]*rate.Limiter),
		rate:  rate.Limit(rps),
		burst: burst,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter := rl.limiterFor(c.RealIP())
			if !limiter.Allow() {
				retry := time.Duration(float64(time.Second) / rps)
				return apperr.New(apperr.RateLimited, "too many requests").WithRetryAfter(retry)
			}
			return next(c)
		}
	}
}
