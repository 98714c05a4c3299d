package httperr

import (
	"errors"
	"fmt"
)

// ======================================================
// Domain error kinds
// ======================================================

// ValidationError reports malformed input: a bad schedule, a non-positive
// duration, a date or time that cannot be booked.
type ValidationError struct {
	Code  string
	Field string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation: %s (%s)", e.Code, e.Field)
	}
	return "validation: " + e.Code
}

// ConflictError reports a booking that overlaps the ledger at write time.
type ConflictError struct {
	Code string
}

func (e ConflictError) Error() string {
	return "conflict: " + e.Code
}

type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// ======================================================
// Constructors
// ======================================================

func ErrValidation(code string) error {
	return ValidationError{Code: code}
}

func ErrInvalidField(field, code string) error {
	return ValidationError{Code: code, Field: field}
}

func ErrConflict(code string) error {
	return ConflictError{Code: code}
}

func ErrNotFound(entity, id string) error {
	return NotFoundError{Entity: entity, ID: id}
}

// ======================================================
// Matchers
// ======================================================

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}

func IsInvalidTransition(err error) bool {
	var te InvalidTransitionError
	return errors.As(err, &te)
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// Code returns the stable snake_case code carried by a domain error.
func Code(err error) string {
	var (
		ve ValidationError
		ce ConflictError
		te InvalidTransitionError
		nf NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Code
	case errors.As(err, &ce):
		return ce.Code
	case errors.As(err, &te):
		return "invalid_transition"
	case errors.As(err, &nf):
		return nf.Entity + "_not_found"
	default:
		return "internal_error"
	}
}
