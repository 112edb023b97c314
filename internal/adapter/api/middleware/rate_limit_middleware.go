package middleware

import (
	"fmt"
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"undulcito/internal/infrastructure/ratelimit"
	"undulcito/pkg/errors"
	"undulcito/pkg/logger"
	"undulcito/pkg/response"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit applies the action's token bucket per client IP.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, wait := m.limiter.Allow(ip, action)
			if !allowed {
				seconds := int(math.Ceil(wait.Seconds()))
				logger.Warn("Rate limit hit: %s %s (retry in %ds)", ip, action, seconds)
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return response.Error(c, errors.TooManyRequests(fmt.Sprintf("Too many requests, try again in %d seconds", seconds)))
			}

			return next(c)
		}
	}
}
