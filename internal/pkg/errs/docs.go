// Package errs provides the standardized error types used across the parcel
// delivery backend.
//
// The package covers the common failure taxonomy:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     validation failures naming the offending field
//   - ObjectNotFoundError: a requested aggregate does not exist
//   - InvalidTransitionError: a state-machine transition the transition
//     table forbids, naming both current and requested state
//   - GatewayError: an external collaborator (payment gateway, routing
//     service) failed; the message is surfaced, the cause is wrapped
//
// Each error type follows the same pattern: a sentinel error variable
// (e.g. ErrObjectNotFound), a struct carrying the details, constructors with
// and without cause, an Error() formatter and an Unwrap() returning the
// sentinel so callers can classify with errors.Is.
//
// Expected business failures (validation, not-found, illegal transitions) are
// always returned as values of these types; they are never panics and never
// leak past the application boundary as anonymous errors.
package errs
