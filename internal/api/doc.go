// Package api implements the low-level Doppler API client: request
// construction, response parsing, the error taxonomy, and the retry
// engine that wraps each endpoint call.
//
// Endpoint methods perform exactly one network round-trip; retry policy
// is layered on top through Do.
package api
