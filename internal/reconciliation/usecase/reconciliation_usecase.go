package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/broadcast"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/metrics"
	outboxDomain "github.com/adamdarley-hub/RealSMPortal-sub003/internal/outbox/domain"
	outboxUsecase "github.com/adamdarley-hub/RealSMPortal-sub003/internal/outbox/usecase"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/reconciliation/domain"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/servemanager"
)

// PlaceholderAmount is submitted when amount resolution exhausts every
// source. Deliberately a visible dummy value rather than a plausible one:
// a $1.00 payment against a real invoice stands out for manual correction.
const PlaceholderAmount = 1.00

// paymentMethod tags remote payment records created by this workflow.
const paymentMethod = "stripe"

// ReconciliationUseCase applies confirmed charges to the remote
// system-of-record and always terminates in an observable outcome.
//
// The workflow never raises a remote failure to its caller: the money has
// already moved, so the only acceptable failure mode is a flagged,
// human-visible inconsistency. Outcomes are written to the outbox before
// the best-effort broadcast, so they survive even when no observer is
// connected. Repeated confirmations for the same payment are not
// deduplicated here; the payment reference is the downstream dedup key.
type ReconciliationUseCase struct {
	gateway     PaymentGateway
	outboxRepo  outboxUsecase.OutboxEventRepository
	broadcaster broadcast.Broadcaster
	business    metrics.BusinessMetrics
	logger      *slog.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
// outboxRepo may be nil, in which case outcomes are broadcast-only.
func NewReconciliationUseCase(
	gateway PaymentGateway,
	outboxRepo outboxUsecase.OutboxEventRepository,
	broadcaster broadcast.Broadcaster,
	business metrics.BusinessMetrics,
	logger *slog.Logger,
) *ReconciliationUseCase {
	if business == nil {
		business = metrics.NoopBusinessMetrics()
	}
	return &ReconciliationUseCase{
		gateway:     gateway,
		outboxRepo:  outboxRepo,
		broadcaster: broadcaster,
		business:    business,
		logger:      logger,
		now:         time.Now,
	}
}

// Reconcile applies one confirmed payment. See UseCase for the contract.
func (uc *ReconciliationUseCase) Reconcile(
	ctx context.Context,
	confirmation domain.PaymentConfirmation,
) *domain.ReconciliationOutcome {
	if confirmation.Status != domain.PaymentStatusPaid {
		if uc.logger != nil {
			uc.logger.Debug("ignoring non-success payment confirmation",
				slog.String("invoice_id", confirmation.InvoiceID),
				slog.String("status", confirmation.Status),
			)
		}
		return nil
	}

	now := uc.now()
	amount := uc.resolveAmount(ctx, confirmation)
	reference := confirmation.Reference
	if reference == "" {
		reference = fmt.Sprintf("stripe_%d", now.UnixMilli())
	}

	payment := servemanager.PaymentRecord{
		Amount:      fmt.Sprintf("%.2f", amount),
		Method:      paymentMethod,
		Date:        now.Format("2006-01-02"),
		Reference:   reference,
		Description: fmt.Sprintf("Stripe payment (ref %s)", reference),
	}

	err := uc.gateway.CreatePayment(ctx, confirmation.InvoiceID, payment)

	outcome := &domain.ReconciliationOutcome{
		ID:         uuid.Must(uuid.NewV7()),
		InvoiceID:  confirmation.InvoiceID,
		Amount:     amount,
		PaymentRef: reference,
		Timestamp:  now,
	}

	if err == nil {
		outcome.Status = domain.OutcomeApplied
		outcome.RemoteUpdated = true

		if uc.logger != nil {
			uc.logger.Info("payment applied to remote system",
				slog.String("invoice_id", confirmation.InvoiceID),
				slog.Float64("amount", amount),
				slog.String("reference", reference),
			)
		}
	} else {
		outcome.Status = domain.OutcomeStripeOnlyFailure
		outcome.RemoteUpdated = false
		outcome.Message = domain.StripeOnlyFailureMessage

		if uc.logger != nil {
			uc.logger.Error("payment succeeded upstream but remote update failed",
				slog.String("invoice_id", confirmation.InvoiceID),
				slog.Float64("amount", amount),
				slog.String("reference", reference),
				slog.Any("error", err),
			)
		}
	}

	uc.business.RecordOperation(ctx, "reconciliation", "payment_apply", string(outcome.Status))
	uc.publish(ctx, outcome)

	return outcome
}

// resolveAmount picks the authoritative charge amount: the caller's value
// when present, otherwise the invoice's balance or total, otherwise the
// placeholder. The record-creation step must always have a numeric amount.
func (uc *ReconciliationUseCase) resolveAmount(
	ctx context.Context,
	confirmation domain.PaymentConfirmation,
) float64 {
	if confirmation.Amount != nil {
		return *confirmation.Amount
	}

	invoice, err := uc.gateway.GetInvoice(ctx, confirmation.InvoiceID)
	if err == nil && invoice.Amount() > 0 {
		return invoice.Amount()
	}

	if uc.logger != nil {
		uc.logger.Warn("amount lookup exhausted, using placeholder",
			slog.String("invoice_id", confirmation.InvoiceID),
			slog.Any("error", err),
		)
	}
	uc.business.RecordOperation(ctx, "reconciliation", "amount_lookup", "exhausted")

	return PlaceholderAmount
}

// publish durably records the outcome, then broadcasts it best-effort.
// Neither step may fail the workflow; an outbox write error is logged and
// the immediate broadcast still goes out.
func (uc *ReconciliationUseCase) publish(ctx context.Context, outcome *domain.ReconciliationOutcome) {
	payload, err := json.Marshal(outcome)
	if err != nil {
		// Outcome structs always marshal; guard anyway.
		payload = []byte("{}")
	}

	if uc.outboxRepo != nil {
		event := &outboxDomain.OutboxEvent{
			ID:        uuid.Must(uuid.NewV7()),
			EventType: outcome.EventType(),
			Payload:   string(payload),
			Status:    outboxDomain.OutboxEventStatusPending,
		}
		if err := uc.outboxRepo.Create(ctx, event); err != nil && uc.logger != nil {
			uc.logger.Error("failed to record outcome in outbox",
				slog.String("invoice_id", outcome.InvoiceID),
				slog.Any("error", err),
			)
		}
	}

	if uc.broadcaster != nil {
		uc.broadcaster.Broadcast(broadcast.Event{
			Type: outcome.EventType(),
			Data: outcome,
		})
	}
}
