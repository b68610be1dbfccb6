package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/adamdarley-hub/RealSMPortal-sub003/internal/errors"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/domain"
)

func newInvoiceRepoMock(t *testing.T) (*PostgreSQLInvoiceRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewPostgreSQLInvoiceRepository(db), mock, db
}

func TestPostgreSQLInvoiceRepository_Upsert(t *testing.T) {
	repo, mock, db := newInvoiceRepoMock(t)
	defer db.Close() //nolint:errcheck

	issued := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	invoice := &domain.Invoice{
		ID:         "inv-1",
		JobID:      "job-1",
		Status:     "issued",
		Total:      150.00,
		BalanceDue: 75.50,
		IssuedOn:   &issued,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO invoices")).
		WithArgs("inv-1", "job-1", "issued", 150.00, 75.50, &issued).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), invoice)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLInvoiceRepository_GetByID(t *testing.T) {
	repo, mock, db := newInvoiceRepoMock(t)
	defer db.Close() //nolint:errcheck

	issued := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	synced := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "job_id", "status", "total", "balance_due", "issued_on", "synced_at",
	}).AddRow("inv-1", "job-1", "issued", 150.00, 75.50, issued, synced)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, job_id, status, total, balance_due, issued_on, synced_at")).
		WithArgs("inv-1").
		WillReturnRows(rows)

	invoice, err := repo.GetByID(context.Background(), "inv-1")
	assert.NoError(t, err)
	require.NotNil(t, invoice)
	assert.Equal(t, "inv-1", invoice.ID)
	assert.Equal(t, "job-1", invoice.JobID)
	assert.Equal(t, 150.00, invoice.Total)
	assert.Equal(t, 75.50, invoice.BalanceDue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLInvoiceRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, db := newInvoiceRepoMock(t)
	defer db.Close() //nolint:errcheck

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, job_id, status, total, balance_due, issued_on, synced_at")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	invoice, err := repo.GetByID(context.Background(), "missing")
	assert.Nil(t, invoice)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLInvoiceRepository_List(t *testing.T) {
	repo, mock, db := newInvoiceRepoMock(t)
	defer db.Close() //nolint:errcheck

	synced := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "job_id", "status", "total", "balance_due", "issued_on", "synced_at",
	}).
		AddRow("inv-1", "job-1", "issued", 150.00, 75.50, nil, synced).
		AddRow("inv-2", "job-2", "paid", 80.00, 0.00, nil, synced)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, job_id, status, total, balance_due, issued_on, synced_at")).
		WithArgs(0, 50).
		WillReturnRows(rows)

	invoices, err := repo.List(context.Background(), 0, 50)
	assert.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, "inv-1", invoices[0].ID)
	assert.Equal(t, "inv-2", invoices[1].ID)
	assert.Nil(t, invoices[0].IssuedOn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLInvoiceRepository_List_QueryError(t *testing.T) {
	repo, mock, db := newInvoiceRepoMock(t)
	defer db.Close() //nolint:errcheck

	queryErr := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, job_id, status, total, balance_due, issued_on, synced_at")).
		WithArgs(0, 50).
		WillReturnError(queryErr)

	invoices, err := repo.List(context.Background(), 0, 50)
	assert.Nil(t, invoices)
	assert.ErrorIs(t, err, queryErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
