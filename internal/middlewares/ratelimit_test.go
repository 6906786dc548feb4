package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 2)
	handler := RateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	do := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/users", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusCreated, do("10.0.0.1:1234"))
	assert.Equal(t, http.StatusCreated, do("10.0.0.1:5678"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:9999"), "burst exhausted for the same host")
	assert.Equal(t, http.StatusCreated, do("10.0.0.2:1234"), "other clients keep their own budget")
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	first := limiter.GetLimiter("10.0.0.1")
	assert.Same(t, first, limiter.GetLimiter("10.0.0.1"))

	limiter.mu.Lock()
	limiter.visitors["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	limiter.mu.Unlock()

	limiter.Cleanup(time.Minute)
	assert.NotSame(t, first, limiter.GetLimiter("10.0.0.1"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[::1]:8080"
	assert.Equal(t, "::1", clientIP(req))

	req.RemoteAddr = "192.168.1.1"
	assert.Equal(t, "192.168.1.1", clientIP(req))
}
