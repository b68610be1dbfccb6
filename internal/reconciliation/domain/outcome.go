// Package domain defines the payment reconciliation entities.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatusPaid is the only confirmation status the workflow acts on.
// Failures and retries are never reconciled into the remote system.
const PaymentStatusPaid = "paid"

// OutcomeStatus labels how a reconciliation ended.
type OutcomeStatus string

const (
	// OutcomeApplied means the payment record was written to the remote
	// system-of-record.
	OutcomeApplied OutcomeStatus = "applied"

	// OutcomeStripeOnlyFailure means the charge succeeded at the processor
	// but the remote system was not updated; a human must reconcile.
	OutcomeStripeOnlyFailure OutcomeStatus = "stripe_only_failure"
)

// Outcome event types as broadcast to observers.
const (
	EventTypePaymentApplied    = "payment.applied"
	EventTypePaymentStripeOnly = "payment.stripe_only_failure"
)

// StripeOnlyFailureMessage is the operator-facing message attached to a
// partial failure.
const StripeOnlyFailureMessage = "payment succeeded upstream but remote system not updated; manual reconciliation required"

// PaymentConfirmation is the processor's view of a completed payment.
// Amount is optional; when absent the workflow resolves it from the
// invoice, falling back to a placeholder.
type PaymentConfirmation struct {
	InvoiceID string
	Reference string
	Amount    *float64
	Status    string
}

// ReconciliationOutcome is the immutable record of one reconciliation.
// Created exactly once per confirmed payment, never mutated afterwards.
type ReconciliationOutcome struct {
	ID            uuid.UUID     `json:"id"`
	InvoiceID     string        `json:"invoice_id"`
	Status        OutcomeStatus `json:"status"`
	Amount        float64       `json:"amount"`
	PaymentRef    string        `json:"payment_reference"`
	Timestamp     time.Time     `json:"timestamp"`
	RemoteUpdated bool          `json:"remote_updated"`
	Message       string        `json:"message,omitempty"`
}

// EventType returns the broadcast event type for this outcome.
func (o *ReconciliationOutcome) EventType() string {
	if o.Status == OutcomeApplied {
		return EventTypePaymentApplied
	}
	return EventTypePaymentStripeOnly
}
