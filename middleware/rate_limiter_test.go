package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotify/config"
)

func rateLimitRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func doPing(r *gin.Engine, ip string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Real-IP", ip)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitUsesConfiguredBudget(t *testing.T) {
	prev := config.AppConfig.MaxRequestsPerMin
	config.AppConfig.MaxRequestsPerMin = 2
	defer func() { config.AppConfig.MaxRequestsPerMin = prev }()

	r := rateLimitRouter()

	require.Equal(t, http.StatusOK, doPing(r, "203.0.113.10"))
	require.Equal(t, http.StatusOK, doPing(r, "203.0.113.10"))
	assert.Equal(t, http.StatusTooManyRequests, doPing(r, "203.0.113.10"))

	// A different client still has its own budget.
	assert.Equal(t, http.StatusOK, doPing(r, "203.0.113.11"))
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		xff        string
		xri        string
		remoteAddr string
		want       string
	}{
		{"forwarded chain", "198.51.100.7, 10.0.0.1", "", "10.0.0.2:1234", "198.51.100.7"},
		{"single forwarded", "198.51.100.8", "", "10.0.0.2:1234", "198.51.100.8"},
		{"real ip", "", "198.51.100.9", "10.0.0.2:1234", "198.51.100.9"},
		{"remote addr", "", "", "198.51.100.10:5678", "198.51.100.10"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tc.remoteAddr
			if tc.xff != "" {
				c.Request.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.xri != "" {
				c.Request.Header.Set("X-Real-IP", tc.xri)
			}
			assert.Equal(t, tc.want, getClientIP(c))
		})
	}
}
