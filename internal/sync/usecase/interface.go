// Package usecase implements the polling engine and the resync it drives.
package usecase

import (
	"context"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/sync/domain"
)

// Trigger performs one full resynchronization against the remote
// system-of-record.
type Trigger interface {
	Sync(ctx context.Context) (*domain.SyncSummary, error)
}

// UseCase defines the polling engine operations.
type UseCase interface {
	// StartPolling arms the recurring resync schedule. No-op when already
	// polling or when the integration is disabled by configuration.
	StartPolling(ctx context.Context)

	// StopPolling cancels the schedule and any pending warm-up. Idempotent.
	StopPolling()

	// ManualSync performs one user-initiated resync and surfaces its error.
	ManualSync(ctx context.Context) (*domain.SyncSummary, error)

	// Status returns a snapshot of the engine state.
	Status() domain.SyncStatus
}
