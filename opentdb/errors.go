package opentdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Use errors.Is to branch on them.
var (
	// ErrTransport indicates the request never produced an HTTP response
	ErrTransport = errors.New("opentdb transport error")
	// ErrUnsuccessful indicates a non-200 response below 500
	ErrUnsuccessful = errors.New("unsuccessful request")
	// ErrInternalServer indicates a 5xx response
	ErrInternalServer = errors.New("internal server error")
	// ErrInvalidOption indicates a caller supplied option violates a constraint
	ErrInvalidOption = errors.New("invalid option")
	// ErrDecode indicates the response body could not be decoded
	ErrDecode = errors.New("failed to decode response")
)

// APIError represents a response with a status other than 200
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.IsServerError() {
		return fmt.Sprintf("opentdb: internal server error (status %d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("opentdb: unsuccessful request (status %d): %s", e.StatusCode, e.Body)
}

// Is reports ErrInternalServer for 5xx codes and ErrUnsuccessful otherwise
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrInternalServer:
		return e.IsServerError()
	case ErrUnsuccessful:
		return !e.IsServerError()
	}
	return false
}

// IsServerError checks if the status code is in the 5xx range
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// IsRateLimited checks if the server asked us to slow down
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// TransportError wraps a network level failure
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("opentdb: request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// DecodeError wraps a JSON, base64 or enum decoding failure of a 200 response.
// Body holds the raw payload for diagnostics and is not part of Error().
type DecodeError struct {
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("opentdb: failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func invalidOption(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOption, fmt.Sprintf(format, args...))
}
