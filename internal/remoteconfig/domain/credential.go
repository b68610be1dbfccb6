// Package domain defines the remote configuration entities.
package domain

import "time"

// ServeManagerService is the fixed service name keying the ServeManager
// credential record.
const ServeManagerService = "servemanager"

// CapabilityDescriptor describes whether, and how, the remote
// system-of-record can be reached right now. Descriptors are built fresh on
// every resolution so credential rotation takes effect on next use; they are
// never cached beyond a single operation.
type CapabilityDescriptor struct {
	BaseURL string
	APIKey  string
	Enabled bool
}

// NewCapabilityDescriptor builds a descriptor from a base URL and API key.
// Enabled holds exactly when both fields are non-empty.
func NewCapabilityDescriptor(baseURL, apiKey string) CapabilityDescriptor {
	return CapabilityDescriptor{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Enabled: baseURL != "" && apiKey != "",
	}
}

// Disabled returns the terminal descriptor used when no configuration tier
// produced usable credentials.
func Disabled() CapabilityDescriptor {
	return CapabilityDescriptor{}
}

// Credential is a stored configuration record for one remote service.
// The API key may be stored encrypted at rest (APIKeyEncrypted true), in
// which case it must be decrypted before use.
type Credential struct {
	Service         string
	BaseURL         string
	APIKey          string
	APIKeyEncrypted bool
	Enabled         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
