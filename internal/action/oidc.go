package action

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Environment set by the runner when the workflow grants the
// `id-token: write` permission.
const (
	EnvIDTokenRequestURL   = "ACTIONS_ID_TOKEN_REQUEST_URL"
	EnvIDTokenRequestToken = "ACTIONS_ID_TOKEN_REQUEST_TOKEN"
)

// ErrNoIDTokenEndpoint means the runner did not provide an OIDC endpoint;
// the workflow is missing the `id-token: write` permission.
var ErrNoIDTokenEndpoint = errors.New("OIDC endpoint not available; grant the workflow `id-token: write` permission")

// idTokenTimeout bounds the round-trip to the runner's token service.
const idTokenTimeout = 10 * time.Second

// IDToken requests a signed OIDC ID token for the current workflow run
// from the runner's token service. An empty audience keeps the runner's
// default.
func IDToken(ctx context.Context, audience string) (string, error) {
	endpoint := os.Getenv(EnvIDTokenRequestURL)
	bearer := os.Getenv(EnvIDTokenRequestToken)
	if endpoint == "" || bearer == "" {
		return "", ErrNoIDTokenEndpoint
	}
	return requestIDToken(ctx, endpoint, bearer, audience)
}

func requestIDToken(ctx context.Context, endpoint, bearer, audience string) (string, error) {
	if audience != "" {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		endpoint += sep + "audience=" + url.QueryEscape(audience)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: idTokenTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request ID token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ID token request failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var result struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode ID token response: %w", err)
	}
	if result.Value == "" {
		return "", errors.New("ID token response contained no token")
	}
	return result.Value, nil
}
