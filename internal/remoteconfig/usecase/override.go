package usecase

import "sync"

// MemoryOverrideStore is an RWMutex-guarded in-memory OverrideStore.
// It backs the administrative write path for runtime reconfiguration in
// environments where redeploying is expensive.
type MemoryOverrideStore struct {
	mu        sync.RWMutex
	overrides map[string]override
}

type override struct {
	baseURL string
	apiKey  string
}

// NewMemoryOverrideStore creates an empty MemoryOverrideStore.
func NewMemoryOverrideStore() *MemoryOverrideStore {
	return &MemoryOverrideStore{
		overrides: make(map[string]override),
	}
}

// Get returns the override for a service, if any.
func (s *MemoryOverrideStore) Get(service string) (baseURL, apiKey string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.overrides[service]
	return o.baseURL, o.apiKey, ok
}

// Set stores an override for a service. Last writer wins.
func (s *MemoryOverrideStore) Set(service, baseURL, apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.overrides[service] = override{baseURL: baseURL, apiKey: apiKey}
}

// Clear removes the override for a service.
func (s *MemoryOverrideStore) Clear(service string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.overrides, service)
}
