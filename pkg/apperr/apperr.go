// Package apperr defines the error taxonomy shared by the resolution and
// persistence layer. Callers classify failures with errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound means no matching profile exists under the caller's
	// visibility rules. It is a legitimate terminal state, distinct from a
	// failure to reach the backend.
	ErrNotFound = errors.New("profile not found")

	// ErrLoadError means a remote call failed for a reason other than
	// absence (network or backend fault) and every fallback also failed to
	// resolve. The UI can offer a retry for this, but not for ErrNotFound.
	ErrLoadError = errors.New("profile could not be loaded")

	// ErrWriteRejected means the backend rejected a write after both the
	// rich and the fallback schema attempts were exhausted.
	ErrWriteRejected = errors.New("write rejected by backend")

	// ErrUnauthenticated means an owner-scoped operation was invoked
	// without a viewer identity.
	ErrUnauthenticated = errors.New("not authenticated")
)
