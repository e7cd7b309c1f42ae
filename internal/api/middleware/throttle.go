package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	// defaultMaxTracked caps how many devices keep a limiter at once.
	defaultMaxTracked = 10000
	// defaultIdleTTL drops the limiter of a device that has been quiet this long.
	defaultIdleTTL = 15 * time.Minute
)

// limiterSet hands out one rate.Limiter per key. Least recently used and
// idle keys are evicted, so the set stays bounded.
type limiterSet struct {
	mu        sync.Mutex
	perSecond rate.Limit
	burst     int
	cache     *expirable.LRU[string, *rate.Limiter]
}

func newLimiterSet(perSecond float64, burst, maxTracked int, idle time.Duration) *limiterSet {
	return &limiterSet{
		perSecond: rate.Limit(perSecond),
		burst:     burst,
		cache:     expirable.NewLRU[string, *rate.Limiter](maxTracked, nil, idle),
	}
}

func (s *limiterSet) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.cache.Get(key)
	if !ok {
		l = rate.NewLimiter(s.perSecond, s.burst)
	}
	// Re-adding refreshes the idle deadline.
	s.cache.Add(key, l)
	return l
}

func (s *limiterSet) len() int {
	return s.cache.Len()
}

// Throttle limits how often each device may hit the wrapped routes. Devices
// are keyed by DeviceIDKey, falling back to the client IP. onReject, if set,
// runs for every rejected request.
func Throttle(perSecond float64, burst int, onReject func()) echo.MiddlewareFunc {
	return throttleWith(newLimiterSet(perSecond, burst, defaultMaxTracked, defaultIdleTTL), onReject)
}

func throttleWith(limiters *limiterSet, onReject func()) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key, _ := c.Get(DeviceIDKey).(string)
			if key == "" {
				key = c.RealIP()
			}
			if !limiters.get(key).Allow() {
				if onReject != nil {
					onReject()
				}
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts, slow down")
			}
			return next(c)
		}
	}
}
