// Package apperror defines the service-wide error taxonomy and its mapping
// to HTTP status codes and the `{error, details}` response body.
package apperror

import (
	"fmt"
	"net/http"
)

// Kind classifies a failure by how the HTTP layer must report it.
type Kind int

const (
	// Authentication means the caller presented no credential or an
	// invalid one. Maps to 401.
	Authentication Kind = iota
	// Authorization means the target vehicle is missing or owned by
	// another user. The two cases are deliberately indistinguishable so
	// callers cannot enumerate other tenants' vehicles. Maps to 403.
	Authorization
	// Validation means the request body or query was malformed. Maps to 400.
	Validation
	// Upstream means the telemetry provider call failed. Maps to 502.
	Upstream
	// Persistence means a store read or write failed. Maps to 500.
	Persistence
)

// Error carries the external message/details pair alongside the wrapped
// cause. Message and Details are safe to serialize to clients; Err is not.
type Error struct {
	Kind    Kind
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case Authentication:
		return http.StatusUnauthorized
	case Authorization:
		return http.StatusForbidden
	case Validation:
		return http.StatusBadRequest
	case Upstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Authn reports a missing or rejected credential.
func Authn(details string) *Error {
	return &Error{Kind: Authentication, Message: "Unauthorized", Details: details}
}

// Authz reports a vehicle that is missing or not owned by the caller.
// Both cases share one message on purpose.
func Authz() *Error {
	return &Error{Kind: Authorization, Message: "Vehicle not found or unauthorized"}
}

// Validationf reports a malformed request.
func Validationf(message, details string) *Error {
	return &Error{Kind: Validation, Message: message, Details: details}
}

// Upstreamf wraps a provider failure.
func Upstreamf(err error, format string, args ...any) *Error {
	return &Error{Kind: Upstream, Message: "Telemetry provider request failed", Details: fmt.Sprintf(format, args...), Err: err}
}

// Persist wraps a store failure behind a generic external message.
func Persist(err error) *Error {
	return &Error{Kind: Persistence, Message: "Internal server error", Details: "database operation failed", Err: err}
}
