package middleware

import (
	"net/http"
	"sync"
	"time"

	"street-eats/internal/models"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// visitorTTL is how long an idle client keeps its bucket before eviction.
const visitorTTL = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps a token bucket per client IP. Idle entries are swept so
// the map stays bounded by the set of recently active clients.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rps       rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second with the
// given burst per IP.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		rps:       rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	t := rl.now()
	if t.Sub(rl.lastSweep) >= visitorTTL {
		for addr, v := range rl.visitors {
			if t.Sub(v.lastSeen) >= visitorTTL {
				delete(rl.visitors, addr)
			}
		}
		rl.lastSweep = t
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = t
	return v.limiter
}

// Middleware returns Echo middleware enforcing the per-IP limit.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.limiter(c.RealIP()).Allow() {
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{Message: "Rate limit exceeded"})
			}
			return next(c)
		}
	}
}
