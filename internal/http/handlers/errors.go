// Package handlers defines the transport-level error values that the
// dispatcher in this package classifies onto the canonical error taxonomy.
//
// Conventions:
//   - Failures that carry data (the offending parameter, its value) are
//     typed errors so the dispatcher can build a precise message.
//   - Failures that are pure signals are sentinel errors.
//   - Handlers never build error bodies themselves; every failure funnels
//     through Respond (see dispatch.go), which owns the taxonomy mapping.
package handlers

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBody signals a request body that parsed to an empty JSON
	// object: present, syntactically fine, but without any usable field.
	ErrEmptyBody = errors.New("request body is an empty object")

	// ErrUnrouted signals a request no route matches. Raised by the
	// router's NoRoute fallback.
	ErrUnrouted = errors.New("no handler matches the requested path")

	// ErrUnauthorized signals a request without usable credentials.
	ErrUnauthorized = errors.New("authentication required")
)

// TypeMismatchError reports a parameter that could not be converted to its
// declared type. The message names the parameter, the received value, and
// the expected type.
type TypeMismatchError struct {
	Param    string
	Value    string
	Expected string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("parameter %s with value %q could not be converted to %s", e.Param, e.Value, e.Expected)
}

// MissingParameterError reports an absent required parameter.
type MissingParameterError struct {
	Param string
}

// Error implements the error interface.
func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("required parameter %s is missing", e.Param)
}

// bodyReadError wraps a failure to read the raw request body (aborted
// upload, over-limit body). Classified as a generic invalid request.
type bodyReadError struct {
	cause error
}

// Error implements the error interface.
func (e *bodyReadError) Error() string {
	return "request body could not be read: " + e.cause.Error()
}

// Unwrap exposes the cause for errors.Is/As chains.
func (e *bodyReadError) Unwrap() error { return e.cause }
