package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/config"
)

func testServerConfig() *config.Config {
	return &config.Config{
		ServerHost: "127.0.0.1",
		ServerPort: 8080,
	}
}

func TestServer_HealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := NewServer(testServerConfig(), testLogger(), Handlers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestServer_ReadyEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := NewServer(testServerConfig(), testLogger(), Handlers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ready")
}

func TestServer_ReadyEndpoint_ShuttingDown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := NewServer(testServerConfig(), testLogger(), Handlers{})

	ctx, cancel := context.WithCancel(context.Background())
	handler := server.buildRouter(ctx)
	cancel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestServer_UnmountedModuleRoutesAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// With no handlers wired, module routes must not exist.
	server := NewServer(testServerConfig(), testLogger(), Handlers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/invoices", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_RequestIDHeaderSet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := NewServer(testServerConfig(), testLogger(), Handlers{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}
