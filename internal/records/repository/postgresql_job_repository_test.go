package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/domain"
)

func newJobRepoMock(t *testing.T) (*PostgreSQLJobRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewPostgreSQLJobRepository(db), mock, db
}

func TestPostgreSQLJobRepository_Upsert(t *testing.T) {
	repo, mock, db := newJobRepoMock(t)
	defer db.Close() //nolint:errcheck

	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	job := &domain.Job{
		ID:        "job-1",
		Status:    "in_progress",
		Recipient: "Jane Roe",
		Reference: "CASE-42",
		DueOn:     &due,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO jobs")).
		WithArgs("job-1", "in_progress", "Jane Roe", "CASE-42", &due).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), job)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLJobRepository_List(t *testing.T) {
	repo, mock, db := newJobRepoMock(t)
	defer db.Close() //nolint:errcheck

	synced := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "status", "recipient", "reference", "due_on", "synced_at",
	}).
		AddRow("job-1", "in_progress", "Jane Roe", "CASE-42", nil, synced).
		AddRow("job-2", "served", "John Doe", "CASE-43", nil, synced)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, status, recipient, reference, due_on, synced_at")).
		WithArgs(0, 50).
		WillReturnRows(rows)

	jobs, err := repo.List(context.Background(), 0, 50)
	assert.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "job-1", jobs[0].ID)
	assert.Equal(t, "served", jobs[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
