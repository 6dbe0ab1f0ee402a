package api

import "errors"

// errPrefix is prepended to every user-visible API failure for provenance.
const errPrefix = "Doppler API Error: "

// Common API errors that can be checked with errors.Is.
var (
	// ErrRateLimited indicates the API rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrUnauthorized indicates the token is invalid, expired, or lacks access.
	ErrUnauthorized = errors.New("invalid or expired token")
)

// APIError represents a non-success HTTP response from the Doppler API.
// It carries the status code and content type of the exact response that
// produced it; those two fields drive the classification in IsRetryable.
type APIError struct {
	StatusCode  int
	ContentType string
	Message     string
}

func (e *APIError) Error() string {
	return errPrefix + e.Message
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

// NetworkError represents a request that never produced an HTTP response
// (DNS failure, refused connection, client-side timeout).
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return errPrefix + e.Err.Error()
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}
