package usecase

import (
	"context"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/domain"
)

// RecordsUseCase serves cached invoices and jobs to the HTTP layer. The
// cache is refreshed by the sync engine; reads here never touch the remote
// system so the UI stays usable when it is degraded.
type RecordsUseCase struct {
	invoiceRepo InvoiceRepository
	jobRepo     JobRepository
}

// NewRecordsUseCase creates a new RecordsUseCase.
func NewRecordsUseCase(invoiceRepo InvoiceRepository, jobRepo JobRepository) *RecordsUseCase {
	return &RecordsUseCase{
		invoiceRepo: invoiceRepo,
		jobRepo:     jobRepo,
	}
}

// GetInvoice returns one cached invoice.
func (uc *RecordsUseCase) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return uc.invoiceRepo.GetByID(ctx, id)
}

// ListInvoices returns a page of cached invoices.
func (uc *RecordsUseCase) ListInvoices(ctx context.Context, offset, limit int) ([]*domain.Invoice, error) {
	return uc.invoiceRepo.List(ctx, offset, limit)
}

// ListJobs returns a page of cached jobs.
func (uc *RecordsUseCase) ListJobs(ctx context.Context, offset, limit int) ([]*domain.Job, error) {
	return uc.jobRepo.List(ctx, offset, limit)
}
