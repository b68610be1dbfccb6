package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/app"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/config"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/domain"
)

// RunSetCredentials stores ServeManager credentials in the database (the
// stored configuration tier). When a KMS key URI is configured the API key
// is encrypted at rest.
func RunSetCredentials(ctx context.Context, baseURL, apiKey string, enabled bool) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	repo, err := container.CredentialRepository()
	if err != nil {
		return fmt.Errorf("failed to initialize credential repository: %w", err)
	}

	cred := &domain.Credential{
		Service: domain.ServeManagerService,
		BaseURL: baseURL,
		APIKey:  apiKey,
		Enabled: enabled,
	}

	protector, err := container.KeyProtector()
	if err != nil {
		return fmt.Errorf("failed to initialize key protector: %w", err)
	}
	if protector != nil {
		ciphertext, err := protector.EncryptAPIKey(ctx, apiKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt api key: %w", err)
		}
		cred.APIKey = ciphertext
		cred.APIKeyEncrypted = true
	}

	if err := repo.Upsert(ctx, cred); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	logger.Info("credentials stored",
		slog.String("service", domain.ServeManagerService),
		slog.Bool("enabled", enabled),
		slog.Bool("encrypted", cred.APIKeyEncrypted),
	)

	return nil
}
