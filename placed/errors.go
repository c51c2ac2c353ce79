package placed

import (
	"errors"
	"fmt"
)

// Error represents a violation of the placement calculus' static rules.
//
// These rules hold for every well-formed program, so the value-level API
// (constructors, combinators) treats a violation as a programmer error and
// panics with an *Error. The inspection API (Resolve, Retype) returns the
// same *Error values instead, for tooling that probes arbitrary input.
type Error struct {
	// Code identifies the rule that was violated.
	Code ErrorCode

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes placement errors.
type ErrorCode string

const (
	// ErrCodeTierMismatch indicates placed arguments at different tiers were
	// combined.
	ErrCodeTierMismatch ErrorCode = "TIER_MISMATCH"

	// ErrCodeNotAtomic indicates a device tier with zero or several bits set.
	ErrCodeNotAtomic ErrorCode = "TIER_NOT_ATOMIC"

	// ErrCodeNestedField indicates a field nested inside a field or a placed
	// payload.
	ErrCodeNestedField ErrorCode = "NESTED_FIELD"

	// ErrCodeNestedPlaced indicates a placed value nested inside a placed
	// payload.
	ErrCodeNestedPlaced ErrorCode = "NESTED_PLACED"

	// ErrCodeIncompatible indicates an assignment between placements that
	// violates the is-a relation.
	ErrCodeIncompatible ErrorCode = "INCOMPATIBLE_PLACEMENT"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsTierMismatch reports whether err is a tier mismatch error.
// Uses errors.As to handle wrapped errors.
func IsTierMismatch(err error) bool {
	return hasCode(err, ErrCodeTierMismatch)
}

// IsIncompatible reports whether err is an incompatible placement error.
func IsIncompatible(err error) bool {
	return hasCode(err, ErrCodeIncompatible)
}

func hasCode(err error, code ErrorCode) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}
