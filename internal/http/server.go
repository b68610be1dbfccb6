package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/broadcast"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/config"
	reconciliationHttp "github.com/adamdarley-hub/RealSMPortal-sub003/internal/reconciliation/http"
	recordsHttp "github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/http"
	remoteconfigHttp "github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/http"
	syncHttp "github.com/adamdarley-hub/RealSMPortal-sub003/internal/sync/http"
)

// Handlers groups the module handlers the router mounts.
type Handlers struct {
	Records     *recordsHttp.RecordsHandler
	Sync        *syncHttp.SyncHandler
	Credentials *remoteconfigHttp.CredentialHandler
	Webhook     *reconciliationHttp.WebhookHandler
	Events      *broadcast.SSEHandler
}

// Server represents the API HTTP server.
type Server struct {
	server   *http.Server
	logger   *slog.Logger
	config   *config.Config
	handlers Handlers
}

// NewServer creates a new HTTP server with all routes registered.
func NewServer(cfg *config.Config, logger *slog.Logger, handlers Handlers) *Server {
	s := &Server{
		logger:   logger,
		config:   cfg,
		handlers: handlers,
	}

	s.server = &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		ReadTimeout: 15 * time.Second,
		// SSE streams must outlive a short write timeout.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server. The context governs the readiness probe:
// once it is cancelled the server reports not-ready while draining.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.buildRouter(ctx)

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	if s.server.Handler == nil {
		s.server.Handler = s.buildRouter(context.Background())
	}
	return s.server.Handler
}

// buildRouter assembles the gin engine with middleware and all routes.
func (s *Server) buildRouter(ctx context.Context) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		s.config.CORSEnabled,
		s.config.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", HealthHandler)
	router.GET("/ready", ReadinessHandler(ctx))

	v1 := router.Group("/v1")

	if s.handlers.Records != nil {
		v1.GET("/invoices", s.handlers.Records.ListInvoicesHandler)
		v1.GET("/invoices/:id", s.handlers.Records.GetInvoiceHandler)
		v1.GET("/jobs", s.handlers.Records.ListJobsHandler)
	}

	if s.handlers.Sync != nil {
		v1.POST("/sync", s.handlers.Sync.ManualSyncHandler)
		v1.GET("/sync/status", s.handlers.Sync.StatusHandler)
		v1.POST("/sync/start", s.handlers.Sync.StartHandler)
		v1.POST("/sync/stop", s.handlers.Sync.StopHandler)
	}

	if s.handlers.Events != nil {
		v1.GET("/events", s.handlers.Events.StreamHandler)
	}

	if s.handlers.Credentials != nil {
		admin := v1.Group("/admin/servemanager")
		admin.GET("/capability", s.handlers.Credentials.GetCapabilityHandler)
		admin.PUT("/credentials", s.handlers.Credentials.SetCredentialsHandler)
	}

	if s.handlers.Webhook != nil {
		webhook := v1.Group("/webhooks")
		if s.config.WebhookRateLimitEnabled {
			webhook.Use(WebhookRateLimitMiddleware(
				s.config.WebhookRateLimitRequestsPerSec,
				s.config.WebhookRateLimitBurst,
				s.logger,
			))
		}
		webhook.POST("/stripe", s.handlers.Webhook.HandleStripeEvent)
	}

	return router
}
