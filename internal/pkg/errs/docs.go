// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - StateConflictError: For operations invalid in the entity's current status
//   - AuthenticationFailedError: For handoff signature mismatches
//   - HandoffConsumedError: For reuse of an already-verified handoff token
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// StateConflictError and HandoffConsumedError are expected, recoverable
// outcomes of racing callers; handlers return them as structured results
// rather than logging them as failures.
package errs
