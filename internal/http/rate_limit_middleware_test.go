package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRateLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(WebhookRateLimitMiddleware(rps, burst, testLogger()))
	router.POST("/v1/webhooks/stripe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"received": true})
	})
	return router
}

func postFrom(router *gin.Engine, addr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/stripe", nil)
	req.RemoteAddr = addr
	router.ServeHTTP(w, req)
	return w
}

func TestWebhookRateLimitMiddleware_AllowsWithinBurst(t *testing.T) {
	router := setupRateLimitedRouter(1, 3)

	for i := 0; i < 3; i++ {
		w := postFrom(router, "10.0.0.1:12345")
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestWebhookRateLimitMiddleware_RejectsBeyondBurst(t *testing.T) {
	router := setupRateLimitedRouter(0.001, 2)

	postFrom(router, "10.0.0.1:12345")
	postFrom(router, "10.0.0.1:12345")

	w := postFrom(router, "10.0.0.1:12345")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestWebhookRateLimitMiddleware_PerSourceIsolation(t *testing.T) {
	router := setupRateLimitedRouter(0.001, 1)

	// Exhaust the first source's bucket.
	assert.Equal(t, http.StatusOK, postFrom(router, "10.0.0.1:12345").Code)
	assert.Equal(t, http.StatusTooManyRequests, postFrom(router, "10.0.0.1:12345").Code)

	// A different source has its own bucket.
	assert.Equal(t, http.StatusOK, postFrom(router, "10.0.0.2:12345").Code)
}
