// Package service provides credential protection for remote configuration.
// API keys in the remote_credentials table may be stored encrypted; this
// package decrypts them through a gocloud.dev secrets keeper.
package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KeyProtector decrypts API keys stored encrypted at rest.
type KeyProtector interface {
	// DecryptAPIKey decrypts a base64-encoded ciphertext back to the API key.
	DecryptAPIKey(ctx context.Context, ciphertext string) (string, error)

	// EncryptAPIKey encrypts an API key and returns base64-encoded ciphertext.
	EncryptAPIKey(ctx context.Context, apiKey string) (string, error)

	// Close releases the underlying keeper resources.
	Close() error
}

// keyProtector implements KeyProtector using gocloud.dev/secrets.
type keyProtector struct {
	keeper *secrets.Keeper
}

// NewKeyProtector opens a secrets keeper for the given key URI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func NewKeyProtector(ctx context.Context, keyURI string) (KeyProtector, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open secrets keeper: %w", err)
	}
	return &keyProtector{keeper: keeper}, nil
}

// DecryptAPIKey decodes the base64 ciphertext and decrypts it.
func (p *keyProtector) DecryptAPIKey(ctx context.Context, ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("invalid api key ciphertext: %w", err)
	}

	plaintext, err := p.keeper.Decrypt(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt api key: %w", err)
	}

	return string(plaintext), nil
}

// EncryptAPIKey encrypts the API key and returns base64-encoded ciphertext.
func (p *keyProtector) EncryptAPIKey(ctx context.Context, apiKey string) (string, error) {
	ciphertext, err := p.keeper.Encrypt(ctx, []byte(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt api key: %w", err)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Close releases the underlying keeper resources.
func (p *keyProtector) Close() error {
	return p.keeper.Close()
}
