package claims

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes domain errors.
type ErrorCode string

const (
	// ErrCodeInvalidInput indicates a malformed date, amount, or enum value.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodeInvalidOperation indicates a ledger operation blocked by the
	// lifecycle guard (claim not open, or informational-only).
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// ErrCodeInvalidTransition indicates an illegal status change.
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"

	// ErrCodeDuplicateKey indicates a claim-number collision for a policy.
	ErrCodeDuplicateKey ErrorCode = "DUPLICATE_KEY"

	// ErrCodeNotFound indicates an unknown claim or policy id.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Error is a structured domain error.
//
// Every failure is scoped to a single operation: the guard check precedes
// any write, so a returned Error always means the claim and its ledger are
// untouched.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// ClaimID identifies the affected claim, when known.
	ClaimID string

	// Details contains additional context for diagnostics.
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ClaimID != "" {
		return fmt.Sprintf("%s: %s (claim=%s)", e.Code, e.Message, e.ClaimID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// codeIs reports whether err is (or wraps) an *Error with the given code.
func codeIs(err error, code ErrorCode) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// IsInvalidInput reports whether err is an INVALID_INPUT error.
func IsInvalidInput(err error) bool { return codeIs(err, ErrCodeInvalidInput) }

// IsInvalidOperation reports whether err is an INVALID_OPERATION error.
func IsInvalidOperation(err error) bool { return codeIs(err, ErrCodeInvalidOperation) }

// IsInvalidTransition reports whether err is an INVALID_TRANSITION error.
func IsInvalidTransition(err error) bool { return codeIs(err, ErrCodeInvalidTransition) }

// IsDuplicateKey reports whether err is a DUPLICATE_KEY error.
func IsDuplicateKey(err error) bool { return codeIs(err, ErrCodeDuplicateKey) }

// IsNotFound reports whether err is a NOT_FOUND error.
func IsNotFound(err error) bool { return codeIs(err, ErrCodeNotFound) }

// NewInvalidInput creates an INVALID_INPUT error.
func NewInvalidInput(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidOperation creates an INVALID_OPERATION error for a claim.
func NewInvalidOperation(claimID, message string) *Error {
	return &Error{Code: ErrCodeInvalidOperation, Message: message, ClaimID: claimID}
}

// NewInvalidTransition creates an INVALID_TRANSITION error for a claim.
func NewInvalidTransition(claimID string, from, to Status) *Error {
	return &Error{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
		ClaimID: claimID,
		Details: map[string]string{"from": string(from), "to": string(to)},
	}
}

// NewDuplicateKey creates a DUPLICATE_KEY error for a policy+claim-number pair.
func NewDuplicateKey(policyID, claimNumber string) *Error {
	return &Error{
		Code:    ErrCodeDuplicateKey,
		Message: fmt.Sprintf("claim number %q already exists for policy %s", claimNumber, policyID),
		Details: map[string]string{"policy_id": policyID, "claim_number": claimNumber},
	}
}

// NewNotFound creates a NOT_FOUND error.
func NewNotFound(kind, id string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s %s not found", kind, id),
		Details: map[string]string{"kind": kind, "id": id},
	}
}
