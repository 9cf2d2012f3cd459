package service

import (
	"errors"
	"fmt"

	"visitdesk-station/internal/domain"
)

var (
	// ErrNotFound means the invitation service has no record matching
	// the scanned or typed reference. Recoverable; the operator should
	// re-scan or re-enter.
	ErrNotFound = errors.New("invitation not found")

	// ErrNotEligible is the controller's defense-in-depth rejection of a
	// confirm issued against a blocked verdict. It indicates a caller
	// bug, not a remote condition.
	ErrNotEligible = errors.New("invitation is not eligible for check-in")

	// ErrDuplicateScan means the same reference was scanned again while
	// its cooldown was still active. The scan was ignored before any
	// lookup happened.
	ErrDuplicateScan = errors.New("duplicate scan ignored during cooldown")
)

// InvalidRecordError reports an input-contract violation: the evaluator
// was handed a record missing a required temporal field. It is fatal to
// the call, never silently repaired.
type InvalidRecordError struct {
	Field string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid invitation record: missing %s", e.Field)
}

// TransportError wraps a failure to reach the invitation service at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("invitation service unreachable during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError is a rejection returned by the invitation service itself,
// typically because server-side state diverged from the station's
// last-known verdict (another operator already checked the visitor in).
// Latest carries the server's current record when the response included
// one, so the operator can be shown why.
type RemoteError struct {
	Op         string
	StatusCode int
	Message    string
	Latest     *domain.InvitationRecord
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("invitation service rejected %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("invitation service rejected %s: status %d", e.Op, e.StatusCode)
}
