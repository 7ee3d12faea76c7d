package services

import "fmt"

const (
	msgMissingFields = "API key and prompt are required"
	msgInvalidBody   = "Invalid request body"
	msgNoText        = "No generated text found in response."
)

// ValidationError means the caller omitted a required field.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// UpstreamError carries a non-200 upstream status and its raw body.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Request failed with status code %d: %s", e.StatusCode, e.Body)
}

// EmptyResponseError means the upstream succeeded without usable content.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string { return msgNoText }

// TransportError wraps network, read and decode failures of the upstream call.
type TransportError struct{ Err error }

func (e *TransportError) Error() string {
	return fmt.Sprintf("Error during API call: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func NewInvalidBodyError() *ValidationError {
	return &ValidationError{Message: msgInvalidBody}
}
