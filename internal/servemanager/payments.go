package servemanager

import (
	"context"
	"net/http"
	"net/url"
)

// PaymentRecord is the payment submitted to an invoice in ServeManager.
// Amount is string-formatted with two decimals and Date carries no time
// component, matching what the remote API accepts.
type PaymentRecord struct {
	Amount      string `json:"amount"`
	Method      string `json:"method"`
	Date        string `json:"date"`
	Reference   string `json:"reference_number"`
	Description string `json:"description"`
}

// CreatePayment submits a payment record scoped to an invoice.
func (c *Client) CreatePayment(ctx context.Context, invoiceID string, payment PaymentRecord) error {
	path := "/invoices/" + url.PathEscape(invoiceID) + "/payments"
	body := map[string]PaymentRecord{"payment": payment}

	_, err := c.Request(ctx, http.MethodPost, path, body)
	return err
}
