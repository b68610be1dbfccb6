// Package http provides HTTP handlers for the cached records.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/httputil"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/http/dto"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/usecase"
)

// RecordsHandler serves cached invoices and jobs.
type RecordsHandler struct {
	recordsUseCase usecase.UseCase
	logger         *slog.Logger
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(recordsUseCase usecase.UseCase, logger *slog.Logger) *RecordsHandler {
	return &RecordsHandler{
		recordsUseCase: recordsUseCase,
		logger:         logger,
	}
}

// ListInvoicesHandler returns a page of cached invoices.
// GET /v1/invoices?offset=N&limit=M
func (h *RecordsHandler) ListInvoicesHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	invoices, err := h.recordsUseCase.ListInvoices(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.ListInvoicesResponse{
		Invoices: make([]dto.InvoiceResponse, 0, len(invoices)),
		Offset:   offset,
		Limit:    limit,
	}
	for _, invoice := range invoices {
		response.Invoices = append(response.Invoices, dto.MapInvoiceToResponse(invoice))
	}

	c.JSON(http.StatusOK, response)
}

// GetInvoiceHandler returns one cached invoice.
// GET /v1/invoices/:id
func (h *RecordsHandler) GetInvoiceHandler(c *gin.Context) {
	invoice, err := h.recordsUseCase.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapInvoiceToResponse(invoice))
}

// ListJobsHandler returns a page of cached jobs.
// GET /v1/jobs?offset=N&limit=M
func (h *RecordsHandler) ListJobsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	jobs, err := h.recordsUseCase.ListJobs(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.ListJobsResponse{
		Jobs:   make([]dto.JobResponse, 0, len(jobs)),
		Offset: offset,
		Limit:  limit,
	}
	for _, job := range jobs {
		response.Jobs = append(response.Jobs, dto.MapJobToResponse(job))
	}

	c.JSON(http.StatusOK, response)
}
