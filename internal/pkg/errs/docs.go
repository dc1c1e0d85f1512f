// Package errs provides standardized error types for the freight application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - ExternalServiceError: For when the carrier API fails or misbehaves
//   - Other specialized error types for specific validation failures
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The taxonomy maps onto the fulfillment saga's propagation policy: validation
// errors abort before any network or database effect, external-service errors
// abort only the current saga step, not-found errors surface missing
// collaborator data, and ErrPartialFailure marks secondary-call failures that
// are logged and swallowed.
package errs
