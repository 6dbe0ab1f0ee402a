package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Version is the release version advertised in the user-agent header.
const Version = "1.4.0"

// userAgent identifies this client to the Doppler API.
const userAgent = "secrets-fetch-github-action/" + Version

// Defaults applied by NewClient when the corresponding Config field is unset.
const (
	DefaultTimeout = 30 * time.Second
)

// Client is the low-level Doppler API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds the API client configuration.
type Config struct {
	// APIHost is the API hostname. A bare host gets an https scheme; a
	// full URL is used as-is.
	APIHost string
	// HTTPClient overrides the default transport.
	HTTPClient *http.Client
	// Timeout applies to the default transport only.
	Timeout time.Duration
}

// NewClient creates an API client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIHost == "" {
		return nil, fmt.Errorf("API host is required")
	}

	baseURL := cfg.APIHost
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// SetHTTPClient sets a custom HTTP client.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// endpoint builds the absolute URL for an API path.
func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// parseErrorResponse converts a non-success response into an APIError.
// Doppler error bodies are {"messages": [...]}; when the body is not that
// shape the status line stands in for the message.
func parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	msg := fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && len(errResp.Messages) > 0 {
		msg = strings.Join(errResp.Messages, " ")
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Message:     msg,
	}
}
