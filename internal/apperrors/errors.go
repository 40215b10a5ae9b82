package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Gateway errors (Twilio Verify)
var (
	// ErrRateLimited the provider refused to send another code for this number
	ErrRateLimited = errors.New("too many OTP requests for this number, try again later")

	// ErrVerificationNotFound no live challenge for this number (never started or expired)
	ErrVerificationNotFound = errors.New("verification not found or expired")

	// ErrInvalidOTP the submitted code did not match the live challenge
	ErrInvalidOTP = errors.New("invalid OTP")

	// ErrGatewayConfig Twilio credentials missing - fatal for the whole OTP subsystem
	ErrGatewayConfig = errors.New("OTP gateway configuration missing")

	// ErrGatewayTimeout the provider did not answer within the request deadline
	ErrGatewayTimeout = errors.New("OTP gateway timed out")
)

// Token errors
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// State errors
var (
	ErrAlreadyCompleted  = errors.New("profile already completed")
	ErrAlreadyRegistered = errors.New("vehicle already registered for this account")
	ErrProfileIncomplete = errors.New("profile must be completed before registering a vehicle")
	ErrAccountNotFound   = errors.New("account not found")
	ErrRouteNotFound     = errors.New("route not found")
)

// ErrSuspiciousInput input matched an injection pattern; the whole submission
// is rejected, distinct from field validation.
var ErrSuspiciousInput = errors.New("input contains disallowed content")

// ValidationError is a field-level, user-correctable failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for a field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// DuplicateError reports which unique fields collided with an existing account.
type DuplicateError struct {
	Fields []string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate value for %s", strings.Join(e.Fields, ", "))
}

// IsDuplicate reports whether err is a DuplicateError and returns it.
func IsDuplicate(err error) (*DuplicateError, bool) {
	var de *DuplicateError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsValidation reports whether err is a ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
