// Package servemanager provides the authenticated HTTP gateway to the
// ServeManager API, the external system-of-record for jobs and invoices.
package servemanager

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/adamdarley-hub/RealSMPortal-sub003/internal/errors"
	"github.com/adamdarley-hub/RealSMPortal-sub003/internal/remoteconfig/usecase"
)

// maxErrorBodyBytes bounds how much of an error response is kept for logs.
const maxErrorBodyBytes = 512

// Client performs authenticated JSON requests against ServeManager.
// Credentials are resolved per request so rotation takes effect immediately;
// the client holds no credential state of its own.
type Client struct {
	resolver   usecase.Resolver
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a ServeManager client. The http.Client carries no
// timeout of its own; callers bound requests through context deadlines.
func NewClient(resolver usecase.Resolver, logger *slog.Logger) *Client {
	return &Client{
		resolver:   resolver,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Request performs one authenticated request and returns the raw JSON body.
// Failures map onto the shared taxonomy: ErrConfigUnavailable when the
// integration is disabled, ErrRemoteTimeout on deadline expiry,
// ErrRemoteNetwork below the HTTP layer, ErrRemoteRejected on non-2xx.
func (c *Client) Request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	desc := c.resolver.Resolve(ctx)
	if !desc.Enabled {
		return nil, apperrors.ErrConfigUnavailable
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, desc.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	// ServeManager authenticates with HTTP Basic auth: the API key as
	// username and an empty password, i.e. base64(apiKey + ":").
	auth := base64.StdEncoding.EncodeToString([]byte(desc.APIKey + ":"))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransportError(ctx, method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		if c.logger != nil {
			c.logger.Warn("servemanager rejected request",
				slog.String("method", method),
				slog.String("path", path),
				slog.Int("status", resp.StatusCode),
				slog.String("body", string(snippet)),
			)
		}
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrRemoteRejected, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", apperrors.ErrRemoteNetwork, err)
	}

	if c.logger != nil {
		c.logger.Debug("servemanager request",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", time.Since(start)),
		)
	}

	return raw, nil
}

// classifyTransportError separates deadline expiry from network-level failure.
func (c *Client) classifyTransportError(ctx context.Context, method, path string, err error) error {
	timedOut := errors.Is(err, context.DeadlineExceeded)
	if !timedOut {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			timedOut = true
		}
	}
	// The request context may carry the deadline even when the transport
	// reports a generic cancellation.
	if !timedOut && ctx.Err() == context.DeadlineExceeded {
		timedOut = true
	}

	if c.logger != nil {
		c.logger.Warn("servemanager request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Bool("timeout", timedOut),
			slog.Any("error", err),
		)
	}

	if timedOut {
		return fmt.Errorf("%w: %v", apperrors.ErrRemoteTimeout, err)
	}
	return fmt.Errorf("%w: %v", apperrors.ErrRemoteNetwork, err)
}
