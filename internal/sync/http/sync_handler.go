// Package http provides HTTP handlers for sync engine control.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/httputil"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/sync/usecase"
)

// SyncHandler exposes polling control and status over HTTP.
type SyncHandler struct {
	engine usecase.UseCase
	logger *slog.Logger
}

// NewSyncHandler creates a new sync handler.
func NewSyncHandler(engine usecase.UseCase, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{engine: engine, logger: logger}
}

// StatusHandler returns the engine status snapshot.
// GET /v1/sync/status
func (h *SyncHandler) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Status())
}

// StartHandler starts background polling. Idempotent.
// POST /v1/sync/start
func (h *SyncHandler) StartHandler(c *gin.Context) {
	h.engine.StartPolling(c.Request.Context())
	c.JSON(http.StatusOK, h.engine.Status())
}

// StopHandler stops background polling. Idempotent.
// POST /v1/sync/stop
func (h *SyncHandler) StopHandler(c *gin.Context) {
	h.engine.StopPolling()
	c.JSON(http.StatusOK, h.engine.Status())
}

// ManualSyncHandler performs one user-initiated resync and surfaces its
// error. A request that overlaps an in-flight resync returns 409.
// POST /v1/sync
func (h *SyncHandler) ManualSyncHandler(c *gin.Context) {
	summary, err := h.engine.ManualSync(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if summary == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "sync_in_progress",
			"message": "a resync is already in flight",
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}
