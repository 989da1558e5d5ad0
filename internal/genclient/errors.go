package genclient

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes the orchestrator needs to tell apart.
var (
	// ErrInvalidEndpoint indicates the client was constructed with an endpoint
	// that is not a valid absolute URL.
	ErrInvalidEndpoint = errors.New("genclient: invalid endpoint url")
	// ErrEmptyResponse indicates a 2xx response whose data list was empty.
	ErrEmptyResponse = errors.New("genclient: empty data response")
	// ErrDecodeResponse indicates a 2xx response body that was not valid JSON
	// of the expected shape.
	ErrDecodeResponse = errors.New("genclient: decode response")
	// ErrImageDecode indicates a response item that yielded no usable image
	// bytes (malformed base64 and no fetchable URL).
	ErrImageDecode = errors.New("genclient: image decode failed")
)

// APIError is a structured non-2xx response from the generation endpoint.
type APIError struct {
	StatusCode int
	Message    string
	ErrType    string
	Code       string
	Param      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("genclient: api error [%d]: %s", e.StatusCode, e.Message)
}

// TransportError wraps a failure below the HTTP layer: unreachable host,
// timeout, connection reset. It is distinct from APIError so callers can
// choose messaging without string matching.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("genclient: network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
