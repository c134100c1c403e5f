package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestResolveRateTier(t *testing.T) {
	tests := []struct {
		path string
		tier string
	}{
		{"/api/orders/7/correction/confirm", "strict"},
		{"/api/orders/7/correction/leave", "strict"},
		{"/api/orders/7/correction", "general"},
		{"/healthz", "general"},
	}

	for _, tc := range tests {
		_, _, tier := resolveRateTier(tc.path)
		assert.Equal(t, tc.tier, tier, tc.path)
	}
}

func TestRateLimitMiddleware_StrictTierExhausts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimitMiddleware())
	router.POST("/api/orders/:id/correction/confirm", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	var last int
	for i := 0; i < burstStrict+1; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/orders/7/correction/confirm", nil)
		req.RemoteAddr = "10.1.2.3:5000"
		router.ServeHTTP(w, req)
		last = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestLimiterRegistry_ReusesBuckets(t *testing.T) {
	r := newLimiterRegistry()

	a := r.get("ip:1.2.3.4:general", rate.Limit(10), 20)
	b := r.get("ip:1.2.3.4:general", rate.Limit(10), 20)
	other := r.get("ip:5.6.7.8:general", rate.Limit(10), 20)

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
}
