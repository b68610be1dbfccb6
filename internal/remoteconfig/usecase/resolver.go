package usecase

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/config"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/domain"
)

// CapabilityResolver resolves ServeManager credentials from ordered tiers:
//
//  1. process environment variables
//  2. the remote_credentials table (optional; errors treated as tier absent)
//  3. the runtime override store
//  4. disabled
//
// Each tier is strictly more ephemeral and less trustworthy than the
// previous, so an operator can override at deploy time without code changes
// while runtime reconfiguration stays possible. The first tier producing
// both a base URL and an API key wins. Resolve never fails and never caches
// across calls.
type CapabilityResolver struct {
	service   string
	repo      CredentialRepository
	protector KeyProtector
	overrides OverrideStore
	logger    *slog.Logger

	// lookupEnv defaults to os.Getenv; replaceable in tests.
	lookupEnv func(string) string
}

// NewCapabilityResolver creates a resolver for the ServeManager service.
// repo, protector, and overrides may each be nil; a nil dependency just
// makes its tier absent.
func NewCapabilityResolver(
	repo CredentialRepository,
	protector KeyProtector,
	overrides OverrideStore,
	logger *slog.Logger,
) *CapabilityResolver {
	return &CapabilityResolver{
		service:   domain.ServeManagerService,
		repo:      repo,
		protector: protector,
		overrides: overrides,
		logger:    logger,
		lookupEnv: os.Getenv,
	}
}

// Resolve walks the tiers and returns a fresh descriptor.
func (r *CapabilityResolver) Resolve(ctx context.Context) domain.CapabilityDescriptor {
	// Tier 1: environment variables.
	baseURL := normalizeBaseURL(r.lookupEnv(config.EnvServeManagerBaseURL))
	apiKey := strings.TrimSpace(r.lookupEnv(config.EnvServeManagerAPIKey))
	if baseURL != "" && apiKey != "" {
		return domain.NewCapabilityDescriptor(baseURL, apiKey)
	}

	// Tier 2: stored credentials. Any failure makes the tier absent.
	if desc, ok := r.resolveStored(ctx); ok {
		return desc
	}

	// Tier 3: runtime overrides.
	if r.overrides != nil {
		baseURL, apiKey, ok := r.overrides.Get(r.service)
		baseURL = normalizeBaseURL(baseURL)
		if ok && baseURL != "" && apiKey != "" {
			return domain.NewCapabilityDescriptor(baseURL, apiKey)
		}
	}

	// Tier 4: disabled. Normal state, not an error.
	return domain.Disabled()
}

// resolveStored attempts the stored-credential tier. It returns ok=false for
// every failure mode: missing repo, query error, disabled record, decryption
// failure, incomplete fields.
func (r *CapabilityResolver) resolveStored(ctx context.Context) (domain.CapabilityDescriptor, bool) {
	if r.repo == nil {
		return domain.Disabled(), false
	}

	cred, err := r.repo.GetByService(ctx, r.service)
	if err != nil {
		if r.logger != nil {
			r.logger.Debug("stored credential tier absent",
				slog.String("service", r.service),
				slog.Any("error", err),
			)
		}
		return domain.Disabled(), false
	}

	if !cred.Enabled {
		return domain.Disabled(), false
	}

	apiKey := cred.APIKey
	if cred.APIKeyEncrypted {
		if r.protector == nil {
			if r.logger != nil {
				r.logger.Warn("stored api key is encrypted but no key protector is configured",
					slog.String("service", r.service),
				)
			}
			return domain.Disabled(), false
		}

		apiKey, err = r.protector.DecryptAPIKey(ctx, cred.APIKey)
		if err != nil {
			if r.logger != nil {
				r.logger.Warn("failed to decrypt stored api key",
					slog.String("service", r.service),
					slog.Any("error", err),
				)
			}
			return domain.Disabled(), false
		}
	}

	baseURL := normalizeBaseURL(cred.BaseURL)
	if baseURL == "" || apiKey == "" {
		return domain.Disabled(), false
	}

	return domain.NewCapabilityDescriptor(baseURL, apiKey), true
}

// normalizeBaseURL trims whitespace and a trailing slash so request paths
// can always be joined with a leading slash.
func normalizeBaseURL(baseURL string) string {
	return strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
}
