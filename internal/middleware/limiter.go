package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate limit tiers. Confirm/leave carry draft-destroying side effects and
// get the strict budget; reads and field edits the general one.
const (
	limitStrict = rate.Limit(2)
	burstStrict = 5

	limitGeneral = rate.Limit(10)
	burstGeneral = 20
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterRegistry struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

func newLimiterRegistry() *limiterRegistry {
	r := &limiterRegistry{visitors: make(map[string]*visitor)}
	go r.cleanup()
	return r
}

func (r *limiterRegistry) get(key string, l rate.Limit, b int) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, exists := r.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(l, b)
		r.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanup drops idle entries so the map doesn't grow unbounded.
func (r *limiterRegistry) cleanup() {
	for {
		time.Sleep(time.Minute)

		r.mu.Lock()
		for key, v := range r.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(r.visitors, key)
			}
		}
		r.mu.Unlock()
	}
}

var registry = newLimiterRegistry()

// RateLimitMiddleware throttles per client IP, with a stricter budget on
// confirm and leave endpoints.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, burst, tier := resolveRateTier(c.Request.URL.Path)
		key := "ip:" + c.ClientIP() + ":" + tier

		if !registry.get(key, limit, burst).Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}

func resolveRateTier(path string) (rate.Limit, int, string) {
	if strings.HasSuffix(path, "/confirm") || strings.HasSuffix(path, "/leave") {
		return limitStrict, burstStrict, "strict"
	}
	return limitGeneral, burstGeneral, "general"
}
