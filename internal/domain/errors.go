package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyPayload is returned when the service answers 2xx with no usable body.
var ErrEmptyPayload = errors.New("distance matrix: empty response payload")

// ConfigurationError reports an option value rejected at construction time.
type ConfigurationError struct {
	Field string
	Value string
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("config error: field %q: required but not set", e.Field)
	}
	return fmt.Sprintf("config error: field %q: unsupported value %q", e.Field, e.Value)
}

// ValidationError reports a lookup input that cannot be turned into a request.
// No network call is made when one is returned.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %q", e.Message, e.Value)
}

// MalformedElementWarning describes a coordinate dropped from a list input.
type MalformedElementWarning struct {
	Field string
	Value string
}

func (w MalformedElementWarning) Error() string {
	return fmt.Sprintf("dropping malformed coordinate for %s: %q", w.Field, w.Value)
}

// WarnFunc receives non-fatal warnings raised while building a request.
type WarnFunc func(MalformedElementWarning)

// TransportError wraps a network failure or a non-success HTTP status.
type TransportError struct {
	StatusCode int // 0 when the request never got a response
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("distance matrix request: %v", e.Err)
	}
	return fmt.Sprintf("distance matrix API error: status %d: %s", e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is a well-formed response whose top-level status is not OK,
// e.g. REQUEST_DENIED or MAX_ELEMENTS_EXCEEDED.
type ServiceError struct {
	Status  string
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("distance matrix service status %s", e.Status)
	}
	return fmt.Sprintf("distance matrix service status %s: %s", e.Status, e.Message)
}
