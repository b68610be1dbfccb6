// Package repository provides data persistence implementations for cached records.
package repository

import (
	"context"
	"database/sql"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/database"
	apperrors "github.com/adamdarley-hub/RealSMPortal-sub003/internal/errors"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/domain"
)

// PostgreSQLInvoiceRepository handles cached invoice persistence for PostgreSQL.
type PostgreSQLInvoiceRepository struct {
	db *sql.DB
}

// NewPostgreSQLInvoiceRepository creates a new PostgreSQLInvoiceRepository.
func NewPostgreSQLInvoiceRepository(db *sql.DB) *PostgreSQLInvoiceRepository {
	return &PostgreSQLInvoiceRepository{db: db}
}

// Upsert inserts or refreshes a cached invoice.
func (r *PostgreSQLInvoiceRepository) Upsert(ctx context.Context, invoice *domain.Invoice) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO invoices (id, job_id, status, total, balance_due, issued_on, synced_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW())
			  ON CONFLICT (id) DO UPDATE
			  SET job_id = EXCLUDED.job_id,
			      status = EXCLUDED.status,
			      total = EXCLUDED.total,
			      balance_due = EXCLUDED.balance_due,
			      issued_on = EXCLUDED.issued_on,
			      synced_at = NOW()`

	_, err := querier.ExecContext(ctx, query,
		invoice.ID, invoice.JobID, invoice.Status, invoice.Total,
		invoice.BalanceDue, invoice.IssuedOn)

	return err
}

// GetByID retrieves a cached invoice. Returns ErrNotFound when absent.
func (r *PostgreSQLInvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, job_id, status, total, balance_due, issued_on, synced_at
			  FROM invoices
			  WHERE id = $1`

	var invoice domain.Invoice
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&invoice.ID, &invoice.JobID, &invoice.Status, &invoice.Total,
		&invoice.BalanceDue, &invoice.IssuedOn, &invoice.SyncedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

// List retrieves cached invoices ordered by id with pagination.
func (r *PostgreSQLInvoiceRepository) List(ctx context.Context, offset, limit int) ([]*domain.Invoice, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, job_id, status, total, balance_due, issued_on, synced_at
			  FROM invoices
			  ORDER BY id
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var invoices []*domain.Invoice
	for rows.Next() {
		var invoice domain.Invoice
		err := rows.Scan(
			&invoice.ID, &invoice.JobID, &invoice.Status, &invoice.Total,
			&invoice.BalanceDue, &invoice.IssuedOn, &invoice.SyncedAt,
		)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, &invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return invoices, nil
}
