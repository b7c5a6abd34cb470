package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/contaflux/contaflux_backend/internal/middleware"
)

func newRateLimitedRouter(t *testing.T, formatted string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rate, err := limiter.NewRateFromFormatted(formatted)
	assert.NoError(t, err)

	r := gin.New()
	r.POST("/login", middleware.RateLimit(limiter.New(memory.NewStore(), rate)), func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	return r
}

func TestRateLimit_AllowsWithinLimit(t *testing.T) {
	router := newRateLimitedRouter(t, "5-M")

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/login", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimit_BlocksWhenExceeded(t *testing.T) {
	router := newRateLimitedRouter(t, "2-M")

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/login", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/login", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
