// internal/api/middleware_test.go
package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("client-a", 3, time.Minute))
	}
	assert.False(t, rl.Allow("client-a", 3, time.Minute))

	// Other keys have independent windows
	assert.True(t, rl.Allow("client-b", 3, time.Minute))
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter()

	assert.True(t, rl.Allow("client", 1, 20*time.Millisecond))
	assert.False(t, rl.Allow("client", 1, 20*time.Millisecond))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("client", 1, 20*time.Millisecond))
}

func TestRateLimitHeaders(t *testing.T) {
	rl := NewRateLimiter()

	limit, remaining, reset := rl.GetRateLimitHeaders("fresh", 10, time.Minute)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 10, remaining)
	assert.Greater(t, reset, time.Now().Unix()-1)

	rl.Allow("fresh", 10, time.Minute)
	_, remaining, _ = rl.GetRateLimitHeaders("fresh", 10, time.Minute)
	assert.Equal(t, 9, remaining)
}

func TestRateLimitMiddlewareRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimitMiddleware(2, time.Minute, func(c *gin.Context) string {
		return "fixed-key-rejects"
	}))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	for i := 0; i < 2; i++ {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "2", recorder.Header().Get("X-RateLimit-Limit"))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "0", recorder.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, recorder.Body.String(), "RATE_LIMIT_EXCEEDED")
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := recorder.Header().Get("X-Request-ID")
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, recorder.Body.String())

	// A caller-supplied ID passes through untouched
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, "trace-42", recorder.Header().Get("X-Request-ID"))
	assert.Equal(t, "trace-42", recorder.Body.String())
}
