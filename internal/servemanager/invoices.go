package servemanager

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	recordsDomain "github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/domain"
)

// invoiceEnvelope matches the ServeManager invoice list/detail payloads.
type invoiceEnvelope struct {
	Invoices []invoiceWire `json:"invoices"`
}

type invoiceWire struct {
	ID         json.Number `json:"id"`
	JobID      json.Number `json:"job_id"`
	Status     string      `json:"status"`
	Total      json.Number `json:"total"`
	BalanceDue json.Number `json:"balance_due"`
	IssuedOn   string      `json:"issued_on"`
}

// GetInvoice fetches one invoice by id.
func (c *Client) GetInvoice(ctx context.Context, id string) (*recordsDomain.Invoice, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/invoices/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var wire struct {
		Invoice invoiceWire `json:"invoice"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode invoice %s: %w", id, err)
	}

	return mapInvoice(wire.Invoice), nil
}

// ListInvoices fetches one page of invoices. Pages start at 1; the second
// return value reports whether the page was full, i.e. another page may
// exist.
func (c *Client) ListInvoices(ctx context.Context, page int) ([]*recordsDomain.Invoice, bool, error) {
	path := fmt.Sprintf("/invoices?page=%d", page)
	raw, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, false, err
	}

	var wire invoiceEnvelope
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, false, fmt.Errorf("failed to decode invoice page %d: %w", page, err)
	}

	invoices := make([]*recordsDomain.Invoice, 0, len(wire.Invoices))
	for _, w := range wire.Invoices {
		invoices = append(invoices, mapInvoice(w))
	}

	return invoices, len(invoices) == defaultPageSize, nil
}

// defaultPageSize is ServeManager's fixed page size.
const defaultPageSize = 100

func mapInvoice(w invoiceWire) *recordsDomain.Invoice {
	inv := &recordsDomain.Invoice{
		ID:         w.ID.String(),
		JobID:      w.JobID.String(),
		Status:     w.Status,
		Total:      parseMoney(w.Total),
		BalanceDue: parseMoney(w.BalanceDue),
	}
	if t, err := time.Parse("2006-01-02", w.IssuedOn); err == nil {
		inv.IssuedOn = &t
	}
	return inv
}

// parseMoney tolerates both numeric and string-encoded amounts.
func parseMoney(n json.Number) float64 {
	v, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0
	}
	return v
}
