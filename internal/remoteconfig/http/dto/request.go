// Package dto provides data transfer objects for remote configuration endpoints.
package dto

import (
	"fmt"
	"net/url"

	validation "github.com/jellydator/validation"
)

// SetCredentialsRequest carries an administrative credential update.
// Persist controls whether the credentials are also written to the stored
// tier; otherwise only the runtime override tier is updated and the change
// is lost on restart.
type SetCredentialsRequest struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
	Persist bool   `json:"persist"`
}

// Validate checks if the set credentials request is valid.
func (r *SetCredentialsRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BaseURL, validation.Required, validation.By(validHTTPURL)),
		validation.Field(&r.APIKey, validation.Required),
	)
}

// validHTTPURL requires an absolute http(s) URL.
func validHTTPURL(value any) error {
	raw, _ := value.(string)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an absolute http(s) URL")
	}
	return nil
}
