package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/reconciliation/domain"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/reconciliation/usecase"
)

// maxWebhookBodyBytes bounds the webhook payload read. Stripe events are
// small; anything larger is not a legitimate event.
const maxWebhookBodyBytes = 1 << 20

// stripeEvent is the envelope Stripe posts to the endpoint. Only the fields
// the workflow consumes are decoded.
type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// checkoutSession is the data.object of checkout.session.completed.
type checkoutSession struct {
	ID            string            `json:"id"`
	AmountTotal   *int64            `json:"amount_total"`
	PaymentIntent string            `json:"payment_intent"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata"`
}

// paymentIntent is the data.object of payment_intent.succeeded.
type paymentIntent struct {
	ID             string            `json:"id"`
	AmountReceived *int64            `json:"amount_received"`
	Metadata       map[string]string `json:"metadata"`
}

// WebhookHandler receives Stripe events and hands confirmed payments to the
// reconciliation workflow.
type WebhookHandler struct {
	reconciliation usecase.UseCase
	webhookSecret  string
	logger         *slog.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(reconciliation usecase.UseCase, webhookSecret string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		reconciliation: reconciliation,
		webhookSecret:  webhookSecret,
		logger:         logger,
		now:            time.Now,
	}
}

// HandleStripeEvent processes one webhook delivery.
// POST /v1/webhooks/stripe
//
// A verified event is always acknowledged with 200, including when the
// reconciliation ends in a partial failure: Stripe retries non-2xx
// deliveries, and retrying cannot repair a remote-side inconsistency.
func (h *WebhookHandler) HandleStripeEvent(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable_payload"})
		return
	}

	if h.webhookSecret != "" {
		header := c.GetHeader("Stripe-Signature")
		if err := VerifySignature(payload, header, h.webhookSecret, h.now()); err != nil {
			if h.logger != nil {
				h.logger.Warn("rejected webhook delivery",
					slog.String("remote_addr", c.ClientIP()),
					slog.Any("error", err),
				)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_signature"})
			return
		}
	}

	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed_event"})
		return
	}

	confirmation, ok := h.confirmationFromEvent(event)
	if !ok {
		// Unknown or irrelevant event types are acknowledged so Stripe
		// does not retry them.
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	outcome := h.reconciliation.Reconcile(c.Request.Context(), confirmation)
	if outcome == nil {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"received": true,
		"outcome":  outcome,
	})
}

// confirmationFromEvent maps a Stripe event to a payment confirmation.
// Returns false for event types the workflow does not act on or events that
// carry no invoice reference.
func (h *WebhookHandler) confirmationFromEvent(event stripeEvent) (domain.PaymentConfirmation, bool) {
	switch event.Type {
	case "checkout.session.completed":
		var session checkoutSession
		if err := json.Unmarshal(event.Data.Object, &session); err != nil {
			h.warn("malformed checkout session payload", event.ID)
			return domain.PaymentConfirmation{}, false
		}

		invoiceID := session.Metadata["invoice_id"]
		if invoiceID == "" {
			h.warn("checkout session without invoice metadata", event.ID)
			return domain.PaymentConfirmation{}, false
		}

		status := domain.PaymentStatusPaid
		if session.PaymentStatus != "" {
			status = session.PaymentStatus
		}

		return domain.PaymentConfirmation{
			InvoiceID: invoiceID,
			Reference: session.PaymentIntent,
			Amount:    centsToAmount(session.AmountTotal),
			Status:    status,
		}, true

	case "payment_intent.succeeded":
		var intent paymentIntent
		if err := json.Unmarshal(event.Data.Object, &intent); err != nil {
			h.warn("malformed payment intent payload", event.ID)
			return domain.PaymentConfirmation{}, false
		}

		invoiceID := intent.Metadata["invoice_id"]
		if invoiceID == "" {
			h.warn("payment intent without invoice metadata", event.ID)
			return domain.PaymentConfirmation{}, false
		}

		return domain.PaymentConfirmation{
			InvoiceID: invoiceID,
			Reference: intent.ID,
			Amount:    centsToAmount(intent.AmountReceived),
			Status:    domain.PaymentStatusPaid,
		}, true

	default:
		return domain.PaymentConfirmation{}, false
	}
}

// warn logs a dropped-event diagnostic; the logger may be nil.
func (h *WebhookHandler) warn(msg, eventID string) {
	if h.logger != nil {
		h.logger.Warn(msg, slog.String("event_id", eventID))
	}
}

// centsToAmount converts Stripe's integer cents to a dollar amount pointer.
// A nil or non-positive value is treated as absent so amount resolution can
// fall back to the invoice.
func centsToAmount(cents *int64) *float64 {
	if cents == nil || *cents <= 0 {
		return nil
	}
	amount := float64(*cents) / 100
	return &amount
}
