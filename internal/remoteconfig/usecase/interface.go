// Package usecase implements the tiered remote configuration resolution logic.
package usecase

import (
	"context"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/domain"
)

// Resolver produces the capability descriptor that is authoritative right now.
// Resolve never fails; when no tier yields usable credentials the returned
// descriptor is disabled.
type Resolver interface {
	Resolve(ctx context.Context) domain.CapabilityDescriptor
}

// CredentialRepository defines the stored-credential lookup used by tier 2.
type CredentialRepository interface {
	GetByService(ctx context.Context, service string) (*domain.Credential, error)
	Upsert(ctx context.Context, cred *domain.Credential) error
}

// KeyProtector decrypts API keys stored encrypted at rest.
type KeyProtector interface {
	DecryptAPIKey(ctx context.Context, ciphertext string) (string, error)
	EncryptAPIKey(ctx context.Context, apiKey string) (string, error)
}

// OverrideStore is the runtime override tier. It is a convenience cache owned
// by whoever constructs the resolver, never a system of record: contents are
// lost on restart and writes are last-writer-wins.
type OverrideStore interface {
	Get(service string) (baseURL, apiKey string, ok bool)
	Set(service, baseURL, apiKey string)
	Clear(service string)
}
