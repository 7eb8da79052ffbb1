// Package services defines the business logic for students and their course
// enrollments. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer;
// translation into the canonical API error body is performed exclusively by
// the dispatcher in the HTTP layer.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStatus is returned when an enrollment status value is not
	// one of the defined lifecycle statuses.
	ErrUnknownStatus = errors.New("unknown enrollment status")

	// ErrStatusRegression is returned when a status transition would move
	// backwards in the enrollment lifecycle.
	ErrStatusRegression = errors.New("enrollment status cannot move backwards")

	// ErrForbidden is returned when the caller is authenticated but not
	// permitted to perform the operation.
	ErrForbidden = errors.New("operation not permitted")

	// ErrEmptyName is returned when a student name is blank after
	// normalization.
	ErrEmptyName = errors.New("student name is empty")

	// ErrAgeOutOfRange is returned when a student age is negative or above
	// the configured maximum.
	ErrAgeOutOfRange = errors.New("student age out of range")
)

// NotFoundError reports a missing resource. Message, when set, is used
// verbatim by the HTTP layer; otherwise the layer renders the default
// "<resource> not found: <key>" form.
type NotFoundError struct {
	Resource string
	Key      string
	Message  string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}
