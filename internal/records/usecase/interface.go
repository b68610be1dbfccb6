// Package usecase implements read access to the cached records.
package usecase

import (
	"context"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/domain"
)

// InvoiceRepository defines cached invoice persistence operations.
type InvoiceRepository interface {
	Upsert(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Invoice, error)
}

// JobRepository defines cached job persistence operations.
type JobRepository interface {
	Upsert(ctx context.Context, job *domain.Job) error
	List(ctx context.Context, offset, limit int) ([]*domain.Job, error)
}

// UseCase defines read operations over the cached records.
type UseCase interface {
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, offset, limit int) ([]*domain.Invoice, error)
	ListJobs(ctx context.Context, offset, limit int) ([]*domain.Job, error)
}
