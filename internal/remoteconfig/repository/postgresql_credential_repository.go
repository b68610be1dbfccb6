// Package repository provides data persistence implementations for remote configuration.
package repository

import (
	"context"
	"database/sql"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/database"
	apperrors "github.com/adamdarley-hub/RealSMPortal-sub003/internal/errors"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/domain"
)

// PostgreSQLCredentialRepository handles remote credential persistence for PostgreSQL.
type PostgreSQLCredentialRepository struct {
	db *sql.DB
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQLCredentialRepository.
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{db: db}
}

// GetByService retrieves the credential record for a service name.
// Returns ErrNotFound when no record exists.
func (r *PostgreSQLCredentialRepository) GetByService(
	ctx context.Context,
	service string,
) (*domain.Credential, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT service, base_url, api_key, api_key_encrypted, enabled, created_at, updated_at
			  FROM remote_credentials
			  WHERE service = $1`

	var cred domain.Credential
	err := querier.QueryRowContext(ctx, query, service).Scan(
		&cred.Service, &cred.BaseURL, &cred.APIKey, &cred.APIKeyEncrypted,
		&cred.Enabled, &cred.CreatedAt, &cred.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &cred, nil
}

// Upsert inserts or replaces the credential record for a service.
func (r *PostgreSQLCredentialRepository) Upsert(ctx context.Context, cred *domain.Credential) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO remote_credentials (service, base_url, api_key, api_key_encrypted, enabled, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			  ON CONFLICT (service) DO UPDATE
			  SET base_url = EXCLUDED.base_url,
			      api_key = EXCLUDED.api_key,
			      api_key_encrypted = EXCLUDED.api_key_encrypted,
			      enabled = EXCLUDED.enabled,
			      updated_at = NOW()`

	_, err := querier.ExecContext(ctx, query,
		cred.Service, cred.BaseURL, cred.APIKey, cred.APIKeyEncrypted, cred.Enabled)

	return err
}
