package cfapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common static errors that can be wrapped with context.
var (
	ErrCanceled            = errors.New("operation canceled")
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrSkipTLSOnlyInDev    = errors.New("skipTLS is only allowed in development environments")
	ErrNoMoreItems         = errors.New("no more items")
	ErrPageLimitExceeded   = errors.New("list exceeds the page limit")
	ErrJobFailed           = errors.New("job failed")
	ErrJobTimeout          = errors.New("timeout waiting for job to complete")
)

// ValidationError is returned when a request fails its self-check. No network
// I/O has happened when this error is returned.
type ValidationError struct {
	Messages []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "Request is invalid: " + strings.Join(e.Messages, ", ")
}

// TransportError wraps a network or connection failure.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-success HTTP response carrying the structured error
// payload returned by the Cloud Controller or UAA.
//
// StatusCode is the HTTP status. Code is the numeric code from the payload,
// or the HTTP status when the payload has none. ErrorCode is the symbolic
// name ("CF-AppNotFound" for v2, "invalid_token" for UAA).
type APIError struct {
	StatusCode  int    `json:"-"           yaml:"status_code"`
	Code        int    `json:"code"        yaml:"code"`
	ErrorCode   string `json:"error"       yaml:"error"`
	Description string `json:"description" yaml:"description"`
}

// NewAPIError creates an APIError from its structured fields.
func NewAPIError(code int, errorCode, description string) *APIError {
	return &APIError{
		StatusCode:  code,
		Code:        code,
		ErrorCode:   errorCode,
		Description: description,
	}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.ErrorCode + ": " + e.Description
}

// errorPayload covers the v2 envelope ({code, description, error_code}), the
// UAA envelope ({error, error_description}) and the mixed {code, error,
// description} shape.
type errorPayload struct {
	Code             *int   `json:"code"`
	Error            string `json:"error"`
	ErrorCode        string `json:"error_code"`
	Description      string `json:"description"`
	ErrorDescription string `json:"error_description"`
}

// ParseAPIError builds an APIError from a non-success response.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Code:       statusCode,
	}

	var payload errorPayload

	err := json.Unmarshal(body, &payload)
	if err == nil {
		if payload.Code != nil {
			apiErr.Code = *payload.Code
		}

		apiErr.ErrorCode = payload.ErrorCode
		if apiErr.ErrorCode == "" {
			apiErr.ErrorCode = payload.Error
		}

		apiErr.Description = payload.Description
		if apiErr.Description == "" {
			apiErr.Description = payload.ErrorDescription
		}
	}

	if apiErr.ErrorCode == "" {
		apiErr.ErrorCode = http.StatusText(statusCode)
	}

	if apiErr.Description == "" {
		apiErr.Description = strings.TrimSpace(string(body))
	}

	return apiErr
}

// DecodeError is returned when a successful response does not match the
// declared response type.
type DecodeError struct {
	Type string
	Body []byte
	Err  error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response: %v", e.Type, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound || strings.HasSuffix(apiErr.ErrorCode, "NotFound")
	}

	return false
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}

	return false
}
