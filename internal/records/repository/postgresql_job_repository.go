package repository

import (
	"context"
	"database/sql"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/database"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/records/domain"
)

// PostgreSQLJobRepository handles cached job persistence for PostgreSQL.
type PostgreSQLJobRepository struct {
	db *sql.DB
}

// NewPostgreSQLJobRepository creates a new PostgreSQLJobRepository.
func NewPostgreSQLJobRepository(db *sql.DB) *PostgreSQLJobRepository {
	return &PostgreSQLJobRepository{db: db}
}

// Upsert inserts or refreshes a cached job.
func (r *PostgreSQLJobRepository) Upsert(ctx context.Context, job *domain.Job) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO jobs (id, status, recipient, reference, due_on, synced_at)
			  VALUES ($1, $2, $3, $4, $5, NOW())
			  ON CONFLICT (id) DO UPDATE
			  SET status = EXCLUDED.status,
			      recipient = EXCLUDED.recipient,
			      reference = EXCLUDED.reference,
			      due_on = EXCLUDED.due_on,
			      synced_at = NOW()`

	_, err := querier.ExecContext(ctx, query,
		job.ID, job.Status, job.Recipient, job.Reference, job.DueOn)

	return err
}

// List retrieves cached jobs ordered by id with pagination.
func (r *PostgreSQLJobRepository) List(ctx context.Context, offset, limit int) ([]*domain.Job, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, status, recipient, reference, due_on, synced_at
			  FROM jobs
			  ORDER BY id
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var jobs []*domain.Job
	for rows.Next() {
		var job domain.Job
		err := rows.Scan(&job.ID, &job.Status, &job.Recipient, &job.Reference, &job.DueOn, &job.SyncedAt)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, &job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
