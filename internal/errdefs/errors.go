package errdefs

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrUnauthorized     = errors.New("authentication error")
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrDeadlinePassed   = errors.New("submission deadline has passed")
	ErrAttemptLimit     = errors.New("exceeded maximum number of attempts")

	// Fulfillment-path errors. These never surface to an HTTP caller;
	// they shape the failure-branch notification and ledger outcome.
	ErrArtifactNotFound = errors.New("invalid submission URL")
	ErrTransfer         = errors.New("transfer error")
	ErrNotification     = errors.New("notification error")
	ErrLedger           = errors.New("ledger error")

	// ErrDependency marks a backing-service failure that is not the
	// client's fault (e.g. user store unreachable during auth).
	ErrDependency = errors.New("dependency failure")
)
