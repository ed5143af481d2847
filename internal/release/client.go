package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/oshokin/kiro-get/internal/config"
)

var (
	// errMetadataURLRequired is returned when a required endpoint value is missing.
	errMetadataURLRequired = errors.New("metadata URL must be provided")
	// errBadHTTPStatus is returned when the endpoint answers with a non-OK status.
	errBadHTTPStatus = errors.New("unexpected http status")
)

// Client fetches release metadata from a fixed endpoint.
type Client struct {
	// metadataURL is the endpoint publishing the release document.
	metadataURL string
	// httpClient performs the metadata requests.
	httpClient *http.Client
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout bounds every metadata request made by the client.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client used for metadata requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a metadata client for the provided endpoint.
func NewClient(metadataURL string, opts ...Option) (*Client, error) {
	if metadataURL == "" {
		return nil, errMetadataURLRequired
	}

	client := &Client{
		metadataURL: metadataURL,
		httpClient:  &http.Client{Timeout: config.DefaultTimeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Fetch downloads and decodes the release metadata document.
func (c *Client) Fetch(ctx context.Context) (*Metadata, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.metadataURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build metadata request: %w", err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetch release metadata: %w", err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s, %s: %w", c.metadataURL, response.Status, errBadHTTPStatus)
	}

	var metadata Metadata
	if err = json.NewDecoder(response.Body).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("decode release metadata: %w", err)
	}

	return &metadata, nil
}
