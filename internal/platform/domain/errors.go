// Package domain holds the error taxonomy shared by every bounded context of the service.
package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError for transport mapping.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindInvalidRange ErrorKind = "INVALID_RANGE"
	KindValidation   ErrorKind = "VALIDATION_ERROR"
	KindNotAllowed   ErrorKind = "NOT_ALLOWED"
	KindConflict     ErrorKind = "CONFLICT"
)

// DomainError is a business rule failure that is safe to show to the caller.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return e.Message
}

// NewNotFoundError reports a missing entity, e.g. NewNotFoundError("Booking", id.String()).
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf("%s with id %s not found", entity, id)}
}

// NewNotFoundMessage reports a NotFound condition with a custom message.
func NewNotFoundMessage(msg string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: msg}
}

// NewInvalidRangeError reports a start/end ordering violation.
func NewInvalidRangeError(msg string) *DomainError {
	return &DomainError{Kind: KindInvalidRange, Message: msg}
}

// NewValidationError reports malformed input.
func NewValidationError(msg string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: msg}
}

// NewNotAllowedError reports a valid request that conflicts with business rules.
func NewNotAllowedError(msg string) *DomainError {
	return &DomainError{Kind: KindNotAllowed, Message: msg}
}

// NewConflictError reports a uniqueness violation.
func NewConflictError(msg string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: msg}
}

// KindOf returns the kind of err, or "" if err is not a DomainError.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsInvalidRange(err error) bool { return KindOf(err) == KindInvalidRange }
func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
func IsNotAllowed(err error) bool   { return KindOf(err) == KindNotAllowed }
func IsConflict(err error) bool     { return KindOf(err) == KindConflict }
