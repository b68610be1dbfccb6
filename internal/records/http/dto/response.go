// Package dto provides data transfer objects for the records endpoints.
package dto

import (
	"time"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/domain"
)

// InvoiceResponse is the JSON form of a cached invoice.
type InvoiceResponse struct {
	ID         string     `json:"id"`
	JobID      string     `json:"job_id,omitempty"`
	Status     string     `json:"status"`
	Total      float64    `json:"total"`
	BalanceDue float64    `json:"balance_due"`
	IssuedOn   *string    `json:"issued_on,omitempty"`
	SyncedAt   time.Time  `json:"synced_at"`
}

// JobResponse is the JSON form of a cached job.
type JobResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Recipient string    `json:"recipient,omitempty"`
	Reference string    `json:"reference,omitempty"`
	DueOn     *string   `json:"due_on,omitempty"`
	SyncedAt  time.Time `json:"synced_at"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Offset   int               `json:"offset"`
	Limit    int               `json:"limit"`
}

// ListJobsResponse wraps a page of jobs.
type ListJobsResponse struct {
	Jobs   []JobResponse `json:"jobs"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}

// MapInvoiceToResponse converts a domain invoice to its response form.
func MapInvoiceToResponse(invoice *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:         invoice.ID,
		JobID:      invoice.JobID,
		Status:     invoice.Status,
		Total:      invoice.Total,
		BalanceDue: invoice.BalanceDue,
		IssuedOn:   formatDate(invoice.IssuedOn),
		SyncedAt:   invoice.SyncedAt,
	}
}

// MapJobToResponse converts a domain job to its response form.
func MapJobToResponse(job *domain.Job) JobResponse {
	return JobResponse{
		ID:        job.ID,
		Status:    job.Status,
		Recipient: job.Recipient,
		Reference: job.Reference,
		DueOn:     formatDate(job.DueOn),
		SyncedAt:  job.SyncedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
