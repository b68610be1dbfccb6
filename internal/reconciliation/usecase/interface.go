// Package usecase implements the payment-to-record reconciliation workflow.
package usecase

import (
	"context"

	recordsDomain "github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/domain"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/reconciliation/domain"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/servemanager"
)

// PaymentGateway is the remote surface the workflow submits to.
type PaymentGateway interface {
	GetInvoice(ctx context.Context, id string) (*recordsDomain.Invoice, error)
	CreatePayment(ctx context.Context, invoiceID string, payment servemanager.PaymentRecord) error
}

// UseCase defines the reconciliation operation.
type UseCase interface {
	// Reconcile applies one confirmed payment to the remote
	// system-of-record. It never returns an error: the payment has already
	// been accepted by the processor, so every failure past the
	// precondition check becomes an observable partial-failure outcome.
	// A nil outcome means the confirmation did not carry a successful
	// payment and nothing was done.
	Reconcile(ctx context.Context, confirmation domain.PaymentConfirmation) *domain.ReconciliationOutcome
}
