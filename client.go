package doppler

import (
	"context"

	"github.com/actions-marketplace-validations/DopplerHQ-secrets-fetch-action/internal/api"
)

// Version is the action release this client identifies as.
const Version = api.Version

// Client is a Doppler secrets API client. It is stateless and safe for
// concurrent use; every call is an independent request/retry cycle.
type Client struct {
	api   *api.Client
	retry *api.RetryConfig
}

// New creates a client.
func New(opts ...Option) (*Client, error) {
	cfg := applyOptions(opts)

	apiClient, err := api.NewClient(api.Config{
		APIHost:    cfg.apiHost,
		HTTPClient: cfg.httpClient,
		Timeout:    cfg.timeout,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		api: apiClient,
		retry: &api.RetryConfig{
			MaxAttempts: cfg.maxAttempts,
			BaseDelay:   cfg.baseDelay,
			ShouldRetry: api.IsRetryable,
		},
	}, nil
}

// FetchSecrets downloads all secrets visible to token. WithProject and
// WithConfig narrow the fetch when the token spans more than one config;
// supply both or neither.
func (c *Client) FetchSecrets(ctx context.Context, token string, opts ...FetchOption) (Secrets, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	var fc fetchConfig
	for _, opt := range opts {
		opt(&fc)
	}

	secrets, err := api.Do(ctx, c.retry, func(ctx context.Context) (api.Secrets, error) {
		return c.api.FetchSecrets(ctx, token, fc.project, fc.config)
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return secrets, nil
}

// OIDCAuth exchanges a workload identity token (for example a GitHub
// Actions ID token) for a short-lived Doppler service token bound to the
// given identity.
func (c *Client) OIDCAuth(ctx context.Context, identity, oidcToken string) (string, error) {
	if identity == "" {
		return "", ErrMissingIdentity
	}
	if oidcToken == "" {
		return "", ErrMissingToken
	}

	token, err := api.Do(ctx, c.retry, func(ctx context.Context) (string, error) {
		return c.api.ExchangeOIDC(ctx, identity, oidcToken)
	})
	if err != nil {
		return "", wrapError(err)
	}
	return token, nil
}
