package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/config"
	apperrors "github.com/adamdarley-hub/RealSMPortal-sub003/internal/errors"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/domain"
)

// MockCredentialRepository is a mock implementation of CredentialRepository
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) GetByService(ctx context.Context, service string) (*domain.Credential, error) {
	args := m.Called(ctx, service)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}

func (m *MockCredentialRepository) Upsert(ctx context.Context, cred *domain.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

// MockKeyProtector is a mock implementation of KeyProtector
type MockKeyProtector struct {
	mock.Mock
}

func (m *MockKeyProtector) DecryptAPIKey(ctx context.Context, ciphertext string) (string, error) {
	args := m.Called(ctx, ciphertext)
	return args.String(0), args.Error(1)
}

func (m *MockKeyProtector) EncryptAPIKey(ctx context.Context, apiKey string) (string, error) {
	args := m.Called(ctx, apiKey)
	return args.String(0), args.Error(1)
}

// envMap builds a lookupEnv func backed by a map.
func envMap(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestCapabilityResolver_EnvTierWins(t *testing.T) {
	repo := &MockCredentialRepository{}
	resolver := NewCapabilityResolver(repo, nil, NewMemoryOverrideStore(), nil)
	resolver.lookupEnv = envMap(map[string]string{
		config.EnvServeManagerBaseURL: "https://env.example.com/",
		config.EnvServeManagerAPIKey:  "env-key",
	})

	desc := resolver.Resolve(context.Background())

	assert.True(t, desc.Enabled)
	assert.Equal(t, "https://env.example.com", desc.BaseURL)
	assert.Equal(t, "env-key", desc.APIKey)
	// Stored tier must not even be consulted
	repo.AssertNotCalled(t, "GetByService", mock.Anything, mock.Anything)
}

func TestCapabilityResolver_StoredTier(t *testing.T) {
	repo := &MockCredentialRepository{}
	repo.On("GetByService", mock.Anything, domain.ServeManagerService).Return(&domain.Credential{
		Service: domain.ServeManagerService,
		BaseURL: "https://stored.example.com",
		APIKey:  "stored-key",
		Enabled: true,
	}, nil)

	resolver := NewCapabilityResolver(repo, nil, NewMemoryOverrideStore(), nil)
	resolver.lookupEnv = envMap(nil)

	desc := resolver.Resolve(context.Background())

	assert.True(t, desc.Enabled)
	assert.Equal(t, "https://stored.example.com", desc.BaseURL)
	assert.Equal(t, "stored-key", desc.APIKey)
	repo.AssertExpectations(t)
}

func TestCapabilityResolver_StoredTier_ErrorIsTierAbsent(t *testing.T) {
	repo := &MockCredentialRepository{}
	repo.On("GetByService", mock.Anything, domain.ServeManagerService).
		Return(nil, errors.New("connection refused"))

	overrides := NewMemoryOverrideStore()
	overrides.Set(domain.ServeManagerService, "https://override.example.com", "override-key")

	resolver := NewCapabilityResolver(repo, nil, overrides, nil)
	resolver.lookupEnv = envMap(nil)

	desc := resolver.Resolve(context.Background())

	// Falls through to the override tier, never errors
	assert.True(t, desc.Enabled)
	assert.Equal(t, "https://override.example.com", desc.BaseURL)
	assert.Equal(t, "override-key", desc.APIKey)
}

func TestCapabilityResolver_StoredTier_NotFoundIsTierAbsent(t *testing.T) {
	repo := &MockCredentialRepository{}
	repo.On("GetByService", mock.Anything, domain.ServeManagerService).
		Return(nil, apperrors.ErrNotFound)

	resolver := NewCapabilityResolver(repo, nil, NewMemoryOverrideStore(), nil)
	resolver.lookupEnv = envMap(nil)

	desc := resolver.Resolve(context.Background())

	assert.False(t, desc.Enabled)
}

func TestCapabilityResolver_StoredTier_DisabledRecordSkipped(t *testing.T) {
	repo := &MockCredentialRepository{}
	repo.On("GetByService", mock.Anything, domain.ServeManagerService).Return(&domain.Credential{
		Service: domain.ServeManagerService,
		BaseURL: "https://stored.example.com",
		APIKey:  "stored-key",
		Enabled: false,
	}, nil)

	resolver := NewCapabilityResolver(repo, nil, NewMemoryOverrideStore(), nil)
	resolver.lookupEnv = envMap(nil)

	desc := resolver.Resolve(context.Background())

	assert.False(t, desc.Enabled)
}

func TestCapabilityResolver_StoredTier_EncryptedKey(t *testing.T) {
	repo := &MockCredentialRepository{}
	repo.On("GetByService", mock.Anything, domain.ServeManagerService).Return(&domain.Credential{
		Service:         domain.ServeManagerService,
		BaseURL:         "https://stored.example.com",
		APIKey:          "ciphertext",
		APIKeyEncrypted: true,
		Enabled:         true,
	}, nil)

	protector := &MockKeyProtector{}
	protector.On("DecryptAPIKey", mock.Anything, "ciphertext").Return("plain-key", nil)

	resolver := NewCapabilityResolver(repo, protector, NewMemoryOverrideStore(), nil)
	resolver.lookupEnv = envMap(nil)

	desc := resolver.Resolve(context.Background())

	assert.True(t, desc.Enabled)
	assert.Equal(t, "plain-key", desc.APIKey)
	protector.AssertExpectations(t)
}

func TestCapabilityResolver_StoredTier_DecryptFailureIsTierAbsent(t *testing.T) {
	repo := &MockCredentialRepository{}
	repo.On("GetByService", mock.Anything, domain.ServeManagerService).Return(&domain.Credential{
		Service:         domain.ServeManagerService,
		BaseURL:         "https://stored.example.com",
		APIKey:          "ciphertext",
		APIKeyEncrypted: true,
		Enabled:         true,
	}, nil)

	protector := &MockKeyProtector{}
	protector.On("DecryptAPIKey", mock.Anything, "ciphertext").
		Return("", errors.New("kms unavailable"))

	resolver := NewCapabilityResolver(repo, protector, NewMemoryOverrideStore(), nil)
	resolver.lookupEnv = envMap(nil)

	desc := resolver.Resolve(context.Background())

	assert.False(t, desc.Enabled)
}

func TestCapabilityResolver_OverrideTier(t *testing.T) {
	overrides := NewMemoryOverrideStore()
	overrides.Set(domain.ServeManagerService, "https://override.example.com/", "override-key")

	resolver := NewCapabilityResolver(nil, nil, overrides, nil)
	resolver.lookupEnv = envMap(nil)

	desc := resolver.Resolve(context.Background())

	assert.True(t, desc.Enabled)
	assert.Equal(t, "https://override.example.com", desc.BaseURL)
}

func TestCapabilityResolver_DisabledWhenNoTierProduces(t *testing.T) {
	resolver := NewCapabilityResolver(nil, nil, NewMemoryOverrideStore(), nil)
	resolver.lookupEnv = envMap(nil)

	desc := resolver.Resolve(context.Background())

	assert.False(t, desc.Enabled)
	assert.Empty(t, desc.BaseURL)
	assert.Empty(t, desc.APIKey)
}

func TestCapabilityResolver_EnabledRequiresBothFields(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		apiKey  string
	}{
		{"missing api key", "https://env.example.com", ""},
		{"missing base url", "", "env-key"},
		{"whitespace base url", "   ", "env-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewCapabilityResolver(nil, nil, nil, nil)
			resolver.lookupEnv = envMap(map[string]string{
				config.EnvServeManagerBaseURL: tt.baseURL,
				config.EnvServeManagerAPIKey:  tt.apiKey,
			})

			desc := resolver.Resolve(context.Background())
			assert.False(t, desc.Enabled)
		})
	}
}

func TestCapabilityResolver_FreshDescriptorPerCall(t *testing.T) {
	overrides := NewMemoryOverrideStore()
	resolver := NewCapabilityResolver(nil, nil, overrides, nil)
	resolver.lookupEnv = envMap(nil)

	assert.False(t, resolver.Resolve(context.Background()).Enabled)

	overrides.Set(domain.ServeManagerService, "https://late.example.com", "late-key")
	desc := resolver.Resolve(context.Background())

	assert.True(t, desc.Enabled)
	assert.Equal(t, "https://late.example.com", desc.BaseURL)
}

func TestMemoryOverrideStore_LastWriterWins(t *testing.T) {
	store := NewMemoryOverrideStore()

	store.Set("servemanager", "https://one.example.com", "key-1")
	store.Set("servemanager", "https://two.example.com", "key-2")

	baseURL, apiKey, ok := store.Get("servemanager")
	assert.True(t, ok)
	assert.Equal(t, "https://two.example.com", baseURL)
	assert.Equal(t, "key-2", apiKey)
}

func TestMemoryOverrideStore_Clear(t *testing.T) {
	store := NewMemoryOverrideStore()

	store.Set("servemanager", "https://one.example.com", "key-1")
	store.Clear("servemanager")

	_, _, ok := store.Get("servemanager")
	assert.False(t, ok)
}
