// Package errs provides the standardized error types of the parcel service.
//
// Every error type follows the same shape:
//   - a sentinel error variable (e.g., ErrObjectNotFound) used with errors.Is
//   - a struct carrying the details of the failure
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The sentinels form the error taxonomy that the inbound adapters translate
// into transport status codes:
//
//	ErrUnauthorized          missing credential
//	ErrForbidden             credential present but insufficient
//	ErrValueIsRequired       }
//	ErrValueIsInvalid        } validation errors (including malformed ids)
//	ErrValueIsOutOfRange     }
//	ErrObjectNotFound        no matching aggregate
//	ErrConflict              guarded update found nothing to modify
//	ErrTransitionIsInvalid   state machine rejected the transition
//
// Anything else is treated as an internal failure.
package errs
