package dto

import "github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/domain"

// CapabilityResponse exposes the current integration state without leaking
// the API key.
type CapabilityResponse struct {
	BaseURL string `json:"base_url"`
	Enabled bool   `json:"enabled"`
}

// MapDescriptorToResponse converts a capability descriptor to its response form.
func MapDescriptorToResponse(desc domain.CapabilityDescriptor) CapabilityResponse {
	return CapabilityResponse{
		BaseURL: desc.BaseURL,
		Enabled: desc.Enabled,
	}
}
