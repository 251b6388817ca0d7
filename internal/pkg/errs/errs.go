package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is. Every structured error in
// this package unwraps to exactly one of these.
var (
	// ErrValueIsRequired indicates a required value was missing.
	ErrValueIsRequired = errors.New("value is required")

	// ErrValueIsInvalid indicates a value was present but malformed.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrValueIsOutOfRange indicates a numeric value fell outside its allowed bounds.
	ErrValueIsOutOfRange = errors.New("value is out of range")

	// ErrObjectNotFound indicates a lookup by identifier matched nothing.
	ErrObjectNotFound = errors.New("object not found")

	// ErrStateConflict indicates an operation that is not valid for the entity's
	// current status: a double assignment, a double execution report, a
	// re-verification. This is an expected, recoverable outcome for racing
	// callers, not a failure.
	ErrStateConflict = errors.New("state conflict")

	// ErrAuthenticationFailed indicates a handoff token signature did not verify.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrHandoffConsumed indicates a handoff token that was already used once.
	ErrHandoffConsumed = errors.New("handoff token already consumed")
)

// sanitize flattens newlines so error messages stay single-line in logs.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a malformed value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a numeric value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       int
	Max       int
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value any, minValue, maxValue int) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value any,
	minValue, maxValue int,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %d, max value is %d",
		ErrValueIsOutOfRange, sanitize(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError reports a failed lookup by identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// StateConflictError reports an operation rejected because the entity was not
// in the expected status. Carries enough context to tell a caller what it
// raced against.
type StateConflictError struct {
	Entity   string
	ID       any
	Expected string
	Actual   string
	Cause    error
}

func NewStateConflictError(entity string, id any, expected, actual string) *StateConflictError {
	return &StateConflictError{Entity: entity, ID: id, Expected: expected, Actual: actual}
}

func NewStateConflictErrorWithCause(entity string, id any, expected, actual string, cause error) *StateConflictError {
	return &StateConflictError{Entity: entity, ID: id, Expected: expected, Actual: actual, Cause: cause}
}

func (e *StateConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s is %s, expected %s",
		ErrStateConflict, e.Entity, sanitize(e.ID), e.Actual, e.Expected)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// AuthenticationFailedError reports a handoff signature mismatch.
// The reason is kept coarse so callers never leak signature material.
type AuthenticationFailedError struct {
	Reason string
	Cause  error
}

func NewAuthenticationFailedError(reason string) *AuthenticationFailedError {
	return &AuthenticationFailedError{Reason: reason}
}

func NewAuthenticationFailedErrorWithCause(reason string, cause error) *AuthenticationFailedError {
	return &AuthenticationFailedError{Reason: reason, Cause: cause}
}

func (e *AuthenticationFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrAuthenticationFailed, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrAuthenticationFailed, e.Reason)
}

func (e *AuthenticationFailedError) Unwrap() error {
	return ErrAuthenticationFailed
}

// HandoffConsumedError reports reuse of a handoff token that was already
// verified once.
type HandoffConsumedError struct {
	OrderID any
}

func NewHandoffConsumedError(orderID any) *HandoffConsumedError {
	return &HandoffConsumedError{OrderID: orderID}
}

func (e *HandoffConsumedError) Error() string {
	return fmt.Sprintf("%s: order %s", ErrHandoffConsumed, sanitize(e.OrderID))
}

func (e *HandoffConsumedError) Unwrap() error {
	return ErrHandoffConsumed
}
