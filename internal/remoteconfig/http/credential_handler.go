// Package http provides HTTP handlers for remote configuration administration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/httputil"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/domain"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/http/dto"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/usecase"
)

// CredentialHandler handles administrative credential updates and exposes the
// current capability state.
type CredentialHandler struct {
	resolver  usecase.Resolver
	overrides usecase.OverrideStore
	repo      usecase.CredentialRepository
	protector usecase.KeyProtector
	logger    *slog.Logger
}

// NewCredentialHandler creates a new credential handler.
// repo and protector may be nil when persistence is not available.
func NewCredentialHandler(
	resolver usecase.Resolver,
	overrides usecase.OverrideStore,
	repo usecase.CredentialRepository,
	protector usecase.KeyProtector,
	logger *slog.Logger,
) *CredentialHandler {
	return &CredentialHandler{
		resolver:  resolver,
		overrides: overrides,
		repo:      repo,
		protector: protector,
		logger:    logger,
	}
}

// GetCapabilityHandler reports whether the integration is enabled.
// GET /v1/admin/servemanager/capability
func (h *CredentialHandler) GetCapabilityHandler(c *gin.Context) {
	desc := h.resolver.Resolve(c.Request.Context())
	c.JSON(http.StatusOK, dto.MapDescriptorToResponse(desc))
}

// SetCredentialsHandler updates the runtime override tier and, when requested,
// persists the credentials to the stored tier.
// PUT /v1/admin/servemanager/credentials
func (h *CredentialHandler) SetCredentialsHandler(c *gin.Context) {
	var req dto.SetCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	h.overrides.Set(domain.ServeManagerService, req.BaseURL, req.APIKey)

	if req.Persist && h.repo != nil {
		cred := &domain.Credential{
			Service: domain.ServeManagerService,
			BaseURL: req.BaseURL,
			APIKey:  req.APIKey,
			Enabled: true,
		}

		if h.protector != nil {
			ciphertext, err := h.protector.EncryptAPIKey(c.Request.Context(), req.APIKey)
			if err != nil {
				httputil.HandleErrorGin(c, err, h.logger)
				return
			}
			cred.APIKey = ciphertext
			cred.APIKeyEncrypted = true
		}

		if err := h.repo.Upsert(c.Request.Context(), cred); err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
	}

	desc := h.resolver.Resolve(c.Request.Context())
	c.JSON(http.StatusOK, dto.MapDescriptorToResponse(desc))
}
