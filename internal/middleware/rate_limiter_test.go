package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func newLimitedEngine(config RateLimiterConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(NewRateLimiter(config).RateLimit())
	engine.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func ping(engine *gin.Engine, clientIP string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = clientIP + ":12345"
	engine.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitExhaustsBurst(t *testing.T) {
	engine := newLimitedEngine(RateLimiterConfig{Rate: rate.Limit(1), Burst: 3})

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, ping(engine, "10.0.0.1"), "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, ping(engine, "10.0.0.1"))
}

// One client burning its budget must not throttle anybody else.
func TestRateLimitIsPerClient(t *testing.T) {
	engine := newLimitedEngine(RateLimiterConfig{Rate: rate.Limit(1), Burst: 2})

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, ping(engine, "10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, ping(engine, "10.0.0.1"))

	assert.Equal(t, http.StatusOK, ping(engine, "10.0.0.2"))
}
