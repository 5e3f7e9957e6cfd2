// Package domain defines the typed business errors shared by every service.
// Handlers and the command processor map kinds to transport-level responses;
// services never expose persistence errors directly.
package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a business failure.
type Kind int

const (
	// KindNotFound — a referenced entity does not exist.
	KindNotFound Kind = iota
	// KindInvalidState — the operation is not allowed in the entity's current
	// lifecycle state (e.g. adding a line to a confirmed order).
	KindInvalidState
	// KindValidation — a non-positive quantity/amount, missing field, or a
	// cross-entity mismatch such as an installment of a different order.
	KindValidation
	// KindInsufficientStock — an EXIT would drive a balance negative, or a BOM
	// consumption cannot be fully satisfied.
	KindInsufficientStock
	// KindConflict — a duplicate BOM edge or a second production order on the
	// same order detail.
	KindConflict
)

// Error carries a kind and a human-readable message. All failures returned by
// the service layer are of this type.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Is makes errors.Is(err, &Error{Kind: k}) match on kind alone.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

func InvalidState(format string, args ...interface{}) *Error {
	return newError(KindInvalidState, format, args...)
}

func Validation(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

func InsufficientStock(format string, args ...interface{}) *Error {
	return newError(KindInsufficientStock, format, args...)
}

func Conflict(format string, args ...interface{}) *Error {
	return newError(KindConflict, format, args...)
}

// KindOf returns the kind of err and true when err (or anything it wraps) is a
// domain error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
