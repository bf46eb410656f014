// Package apierror provides the typed error vocabulary for the API.
// Every failure returned to clients goes through this package so that the
// reconciliation engine can signal validation, not-found, conflict,
// transaction and degraded-mode failures without the handlers inspecting
// error strings — and so internal details never leak into responses.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	// Validation — malformed or missing input, rejected before any write.
	Validation Kind = iota
	// NotFound — a referenced product/order/purchase does not exist.
	NotFound
	// Conflict — a delete blocked by existing references.
	Conflict
	// TxFailure — a multi-statement effect failed and was rolled back.
	TxFailure
	// Degraded — the operation requires durable storage and the process is
	// running on the in-memory fallback.
	Degraded
)

// Error carries a user-facing message plus the wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NewValidation(msg string) *Error { return &Error{Kind: Validation, Message: msg} }
func NewNotFound(msg string) *Error   { return &Error{Kind: NotFound, Message: msg} }
func NewConflict(msg string) *Error   { return &Error{Kind: Conflict, Message: msg} }
func NewDegraded(msg string) *Error   { return &Error{Kind: Degraded, Message: msg} }

// NewTxFailure wraps a failure that aborted a transaction.
func NewTxFailure(msg string, err error) *Error {
	return &Error{Kind: TxFailure, Message: msg, Err: err}
}

// Status maps any error to an HTTP status code. Untyped errors are treated
// as internal failures.
func Status(err error) int {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError
	}
	switch apiErr.Kind {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Degraded:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Response is the error envelope for every 4xx/5xx body.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Envelope renders err into the wire shape.
func Envelope(err error) Response {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return Response{Success: false, Message: "internal server error", Error: err.Error()}
	}
	resp := Response{Success: false, Message: apiErr.Message}
	if apiErr.Err != nil {
		resp.Error = apiErr.Err.Error()
	}
	return resp
}
