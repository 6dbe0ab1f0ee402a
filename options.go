package doppler

import (
	"net/http"
	"time"

	"github.com/actions-marketplace-validations/DopplerHQ-secrets-fetch-action/internal/api"
)

// defaultAPIHost is the production Doppler API.
const defaultAPIHost = "api.doppler.com"

// clientConfig holds configuration for the client.
type clientConfig struct {
	apiHost     string
	httpClient  *http.Client
	timeout     time.Duration
	maxAttempts int
	baseDelay   time.Duration
}

// fetchConfig holds per-call configuration for FetchSecrets.
type fetchConfig struct {
	project string
	config  string
}

// Option configures the client.
type Option func(*clientConfig)

// FetchOption configures a single FetchSecrets call.
type FetchOption func(*fetchConfig)

// WithAPIHost sets the API host. A bare hostname is reached over https;
// a full URL is used as-is. Default: api.doppler.com.
func WithAPIHost(host string) Option {
	return func(c *clientConfig) {
		c.apiHost = host
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
// Ignored when WithHTTPClient is supplied.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithMaxAttempts sets the total attempt budget per API call, first try
// included. Default: 5.
func WithMaxAttempts(attempts int) Option {
	return func(c *clientConfig) {
		c.maxAttempts = attempts
	}
}

// WithBaseDelay sets the backoff unit for retries. Default: 500ms.
func WithBaseDelay(delay time.Duration) Option {
	return func(c *clientConfig) {
		c.baseDelay = delay
	}
}

// WithProject selects the project to fetch secrets from. The project is
// only forwarded when WithConfig is supplied as well.
func WithProject(project string) FetchOption {
	return func(c *fetchConfig) {
		c.project = project
	}
}

// WithConfig selects the config to fetch secrets from. The config is only
// forwarded when WithProject is supplied as well.
func WithConfig(config string) FetchOption {
	return func(c *fetchConfig) {
		c.config = config
	}
}

// applyOptions builds the default configuration and applies opts on top.
func applyOptions(opts []Option) *clientConfig {
	cfg := &clientConfig{
		apiHost:     defaultAPIHost,
		maxAttempts: api.DefaultMaxAttempts,
		baseDelay:   api.DefaultBaseDelay,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
