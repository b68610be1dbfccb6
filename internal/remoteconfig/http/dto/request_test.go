package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetCredentialsRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request SetCredentialsRequest
		wantErr bool
	}{
		{
			name: "valid https url",
			request: SetCredentialsRequest{
				BaseURL: "https://api.servemanager.com",
				APIKey:  "sm_key_123",
			},
			wantErr: false,
		},
		{
			name: "valid http url",
			request: SetCredentialsRequest{
				BaseURL: "http://localhost:4000",
				APIKey:  "sm_key_123",
			},
			wantErr: false,
		},
		{
			name: "valid with persist",
			request: SetCredentialsRequest{
				BaseURL: "https://api.servemanager.com",
				APIKey:  "sm_key_123",
				Persist: true,
			},
			wantErr: false,
		},
		{
			name: "missing base url",
			request: SetCredentialsRequest{
				APIKey: "sm_key_123",
			},
			wantErr: true,
		},
		{
			name: "missing api key",
			request: SetCredentialsRequest{
				BaseURL: "https://api.servemanager.com",
			},
			wantErr: true,
		},
		{
			name: "not a url",
			request: SetCredentialsRequest{
				BaseURL: "not a url",
				APIKey:  "sm_key_123",
			},
			wantErr: true,
		},
		{
			name: "non-http scheme",
			request: SetCredentialsRequest{
				BaseURL: "ftp://api.servemanager.com",
				APIKey:  "sm_key_123",
			},
			wantErr: true,
		},
		{
			name: "scheme without host",
			request: SetCredentialsRequest{
				BaseURL: "https://",
				APIKey:  "sm_key_123",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
