package middleware

import (
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/network-link-manager/internal/metrics"
)

// maxTrackedClients bounds the per-client limiter table. The least
// recently seen client is forgotten first.
const maxTrackedClients = 4096

// RateLimit returns Echo middleware that allows each client IP perSecond
// requests with the given burst. Excess requests get 429. Operational
// paths are never limited. A perSecond of zero disables limiting.
func RateLimit(perSecond float64, burst int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	// lru.New only fails on a non-positive size.
	clients, _ := lru.New[string, *rate.Limiter](maxTrackedClients)

	limiterFor := func(ip string) *rate.Limiter {
		if l, ok := clients.Get(ip); ok {
			return l
		}
		l := rate.NewLimiter(rate.Limit(perSecond), burst)
		if prev, ok, _ := clients.PeekOrAdd(ip, l); ok {
			return prev
		}
		return l
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, skip := metricsSkipPaths[c.Request().URL.Path]; skip {
				return next(c)
			}

			if !limiterFor(c.RealIP()).Allow() {
				metrics.HTTPRateLimitedTotal.Inc()
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "rate limit exceeded",
				})
			}
			return next(c)
		}
	}
}
