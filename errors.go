package doppler

import (
	"errors"

	"github.com/actions-marketplace-validations/DopplerHQ-secrets-fetch-action/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingToken is returned when no token is provided.
	ErrMissingToken = errors.New("token is required")

	// ErrMissingIdentity is returned when no OIDC identity is provided.
	ErrMissingIdentity = errors.New("identity is required")

	// ErrUnauthorized is returned when the token is invalid or expired.
	ErrUnauthorized = errors.New("invalid or expired token")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// APIError represents a non-success HTTP response from the Doppler API.
type APIError struct {
	StatusCode  int
	ContentType string
	Message     string
}

func (e *APIError) Error() string {
	return "Doppler API Error: " + e.Message
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// NetworkError represents a request that never reached the API.
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return "Doppler API Error: " + e.Err.Error()
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// wrapError converts internal API errors to public errors so that
// errors.Is() and errors.As() checks work with the public types.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode:  apiErr.StatusCode,
			ContentType: apiErr.ContentType,
			Message:     apiErr.Message,
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err: netErr.Err,
			URL: netErr.URL,
		}
	}

	return err
}
