// Package errs provides standardized error types for the MES engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package covers the engine's error taxonomy:
//   - ObjectNotFoundError: an entity id does not resolve
//   - ResourceUnavailableError: a machine cannot be claimed (wrong status
//     or already claimed)
//   - StateConflictError: an operation is forbidden in the current state,
//     e.g. completing maintenance on a machine that is not in maintenance
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     input validation failures
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// Command handlers surface these typed errors to their callers; the HTTP
// adapter maps the sentinels to status codes.
package errs
