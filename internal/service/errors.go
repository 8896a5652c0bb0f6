package service

import (
	"errors"
	"net/http"
)

// ValidationError reports a missing or invalid input field
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports that a referenced entity is absent
type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// UnauthorizedError reports missing or invalid credentials
type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

// ForbiddenError reports a denied invite: device mismatch or disabled token
type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

// ConflictError reports a unique-name collision
type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

func ErrValidation(msg string) error   { return &ValidationError{Message: msg} }
func ErrNotFound(msg string) error     { return &NotFoundError{Message: msg} }
func ErrUnauthorized(msg string) error { return &UnauthorizedError{Message: msg} }
func ErrForbidden(msg string) error    { return &ForbiddenError{Message: msg} }
func ErrConflict(msg string) error     { return &ConflictError{Message: msg} }

// StatusOf maps an error to its HTTP status. Errors outside the taxonomy
// are internal faults.
func StatusOf(err error) int {
	var (
		validation   *ValidationError
		notFound     *NotFoundError
		unauthorized *UnauthorizedError
		forbidden    *ForbiddenError
		conflict     *ConflictError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
