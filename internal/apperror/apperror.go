// Package apperror defines the error taxonomy shared by the service layer and
// the HTTP controllers. Services return these types verbatim; controllers map
// them onto status codes. Nothing here retries anything, retry is always a
// caller decision.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated means no valid credential accompanied the request.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrProfileNotFound means the credential was valid but no profile row is
	// linked to the identity. This is a data-integrity anomaly, not an auth
	// failure, and is reported separately so it is never mistaken for one.
	ErrProfileNotFound = errors.New("no profile linked to identity")

	// ErrForbidden means the caller's profile exists but its role does not
	// permit the operation.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports a field-level rule violation detected before any
// external call was made. Zero side effects are guaranteed when one is returned.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Rule)
}

// StoreWriteError wraps a rejected write against the remote store or the auth
// subsystem. It covers exactly one network call; the caller must not assume
// anything about writes issued before or after it.
type StoreWriteError struct {
	Op  string // "delete answers", "upsert answers", "create identity", ...
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store write failed (%s): %v", e.Op, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// PartialProvisioningError is the partial-success terminal of the provisioning
// flow: the auth identity exists but its profile row could not be written.
// The orphaned identity's id and email are carried so an operator or a later
// retry can repair the profile alone.
type PartialProvisioningError struct {
	AuthUserID string
	Email      string
	Err        error
}

func (e *PartialProvisioningError) Error() string {
	return fmt.Sprintf("identity %s (%s) created but profile sync failed: %v", e.AuthUserID, e.Email, e.Err)
}

func (e *PartialProvisioningError) Unwrap() error { return e.Err }

// AsValidation unwraps err to a *ValidationError if one is in the chain.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// AsPartialProvisioning unwraps err to a *PartialProvisioningError if one is
// in the chain.
func AsPartialProvisioning(err error) (*PartialProvisioningError, bool) {
	var pe *PartialProvisioningError
	ok := errors.As(err, &pe)
	return pe, ok
}
