package usecase

import (
	"context"
	"log/slog"

	recordsDomain "github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/domain"
	recordsUsecase "github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/usecase"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/sync/domain"
)

// maxSyncPages bounds one resync so a runaway remote listing cannot pin the
// engine past its timeout budget.
const maxSyncPages = 50

// RemoteLister is the gateway surface the syncer consumes.
type RemoteLister interface {
	ListInvoices(ctx context.Context, page int) ([]*recordsDomain.Invoice, bool, error)
	ListJobs(ctx context.Context, page int) ([]*recordsDomain.Job, bool, error)
}

// Syncer performs one full resynchronization: it pages invoices and jobs
// out of the remote system-of-record and upserts them into the local cache.
type Syncer struct {
	gateway     RemoteLister
	invoiceRepo recordsUsecase.InvoiceRepository
	jobRepo     recordsUsecase.JobRepository
	logger      *slog.Logger
}

// NewSyncer creates a new Syncer.
func NewSyncer(
	gateway RemoteLister,
	invoiceRepo recordsUsecase.InvoiceRepository,
	jobRepo recordsUsecase.JobRepository,
	logger *slog.Logger,
) *Syncer {
	return &Syncer{
		gateway:     gateway,
		invoiceRepo: invoiceRepo,
		jobRepo:     jobRepo,
		logger:      logger,
	}
}

// Sync pulls all invoice and job pages and refreshes the cache.
func (s *Syncer) Sync(ctx context.Context) (*domain.SyncSummary, error) {
	summary := &domain.SyncSummary{}

	for page := 1; page <= maxSyncPages; page++ {
		invoices, more, err := s.gateway.ListInvoices(ctx, page)
		if err != nil {
			return nil, err
		}

		for _, invoice := range invoices {
			if err := s.invoiceRepo.Upsert(ctx, invoice); err != nil {
				return nil, err
			}
			summary.Invoices++
		}

		if !more {
			break
		}
	}

	for page := 1; page <= maxSyncPages; page++ {
		jobs, more, err := s.gateway.ListJobs(ctx, page)
		if err != nil {
			return nil, err
		}

		for _, job := range jobs {
			if err := s.jobRepo.Upsert(ctx, job); err != nil {
				return nil, err
			}
			summary.Jobs++
		}

		if !more {
			break
		}
	}

	if s.logger != nil {
		s.logger.Debug("cache refreshed",
			slog.Int("invoices", summary.Invoices),
			slog.Int("jobs", summary.Jobs),
		)
	}

	return summary, nil
}
