// Package errs provides standardized error types for the delivery-tracking service.
//
// The package includes one type per error category:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: input validation
//   - ObjectNotFoundError: an entity lookup found nothing
//   - UnauthorizedError: credentials or bearer token could not be validated
//   - ConflictError: an integrity rule rejected a write (e.g. a package delivered twice)
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrConflict) returned by Unwrap
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() formatting the details on a single line
//
// Transport code classifies errors with errors.Is against the sentinels and
// never inspects the struct fields, which keeps status mapping in one place.
package errs
