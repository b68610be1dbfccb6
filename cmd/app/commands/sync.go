package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/app"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/config"
)

// RunSync performs one full resync against ServeManager and exits.
// Useful for operational backfills and for verifying credentials.
func RunSync(ctx context.Context) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	engine, err := container.SyncEngine()
	if err != nil {
		return fmt.Errorf("failed to initialize sync engine: %w", err)
	}

	summary, err := engine.ManualSync(ctx)
	if err != nil {
		return fmt.Errorf("resync failed: %w", err)
	}

	logger.Info("resync completed",
		slog.Int("invoices", summary.Invoices),
		slog.Int("jobs", summary.Jobs),
	)

	return nil
}
