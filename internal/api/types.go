package api

// VisibilityUnmasked marks a secret whose value is displayed in plaintext;
// every other visibility is treated as sensitive.
const VisibilityUnmasked = "unmasked"

// Secret is one entry in a config's secrets map.
type Secret struct {
	Raw                string `json:"raw"`
	Computed           string `json:"computed"`
	RawVisibility      string `json:"rawVisibility,omitempty"`
	ComputedVisibility string `json:"computedVisibility,omitempty"`
}

// Secrets maps secret names to their records. Iteration order is undefined.
type Secrets map[string]Secret

// secretsResponse represents the GET /v3/configs/config/secrets response.
type secretsResponse struct {
	Secrets Secrets `json:"secrets"`
}

// oidcRequest represents the POST /v3/auth/oidc request body.
type oidcRequest struct {
	Identity string `json:"identity"`
	Token    string `json:"token"`
}

// oidcResponse represents the POST /v3/auth/oidc response.
type oidcResponse struct {
	Token string `json:"token"`
}

// errorResponse is the error body shape shared by all Doppler endpoints.
type errorResponse struct {
	Messages []string `json:"messages"`
}
