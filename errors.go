package convexenv

import (
	"errors"
	"fmt"
)

// Failure kinds. Each is a data or declaration error detected at a single
// variable; Create and Verify wrap them in a *VariableError.
var (
	ErrReservedKey      = errors.New("Cannot override CONVEX_SITE_URL or CONVEX_CLOUD_URL")
	ErrRequired         = errors.New("Variable is required but not found in env")
	ErrEmptyValue       = errors.New("Value is empty")
	ErrNotANumber       = errors.New("Value is not a number")
	ErrNotAFiniteNumber = errors.New("Value is not a finite number")
	ErrNotABoolean      = errors.New("Value is not a valid boolean")
	ErrValidation       = errors.New("Variable failed validation")
	ErrUnsupportedKind  = errors.New("Validator is not supported")
)

// Operation names used in VariableError messages
const (
	OpCreate = "creating"
	OpVerify = "verifying"
)

// VariableError ties a failure to the variable that caused it.
type VariableError struct {
	Op  string // OpCreate or OpVerify
	Key string // The variable name (e.g., "DATABASE_URL")
	Err error  // One of the Err* values, possibly wrapped with detail
}

// Error formats as "Error creating environment variable KEY: reason".
func (e *VariableError) Error() string {
	return fmt.Sprintf("Error %s environment variable %s: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying failure so errors.Is can match the Err* values.
func (e *VariableError) Unwrap() error {
	return e.Err
}

// KeyOf returns the variable name carried by err, if any.
func KeyOf(err error) (string, bool) {
	var verr *VariableError
	if errors.As(err, &verr) {
		return verr.Key, true
	}
	return "", false
}

// Reason returns the message of the failure without the variable prefix.
func Reason(err error) string {
	var verr *VariableError
	if errors.As(err, &verr) {
		return verr.Err.Error()
	}
	return err.Error()
}
