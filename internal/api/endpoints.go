package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// FetchSecrets downloads the secrets of a config. project and config are
// forwarded as query parameters only when both are set; otherwise the API
// resolves the config from the token itself.
func (c *Client) FetchSecrets(ctx context.Context, token, project, config string) (Secrets, error) {
	u := c.endpoint("/v3/configs/config/secrets")
	if project != "" && config != "" {
		q := url.Values{}
		q.Set("project", project)
		q.Set("config", config)
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(token, "")
	req.Header.Set("user-agent", userAgent)
	req.Header.Set("accepts", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err, URL: u}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp)
	}

	var result secretsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode secrets response: %w", err)
	}
	return result.Secrets, nil
}

// ExchangeOIDC trades a workload identity token for a short-lived service
// token. The returned token is opaque; it is not parsed or validated here.
func (c *Client) ExchangeOIDC(ctx context.Context, identity, token string) (string, error) {
	u := c.endpoint("/v3/auth/oidc")

	body, err := json.Marshal(oidcRequest{Identity: identity, Token: token})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	// Building the request from a bytes.Reader sets an explicit
	// Content-Length on the wire.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("user-agent", userAgent)
	req.Header.Set("accepts", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err, URL: u}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", parseErrorResponse(resp)
	}

	var result oidcResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode auth response: %w", err)
	}
	return result.Token, nil
}
