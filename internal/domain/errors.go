package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrCartExpired indicates the remote cart no longer exists and the
	// local mirror was discarded. The caller should treat the cart as
	// freshly empty.
	ErrCartExpired = errors.New("remote cart expired")
)

// TransportError wraps a network-level failure talking to the remote
// platform. State is never changed when one of these is returned.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError carries the user-facing error messages returned by the
// remote platform for a rejected request. CartNotFound marks the
// invalidated-cart sentinel detected at the transport adapter.
type RemoteError struct {
	Op           string
	Messages     []string
	CartNotFound bool
}

func (e *RemoteError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("%s: remote request rejected", e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Op, strings.Join(e.Messages, "; "))
}

// IsCartGone reports whether err carries the invalidated-cart sentinel.
func IsCartGone(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.CartNotFound
}

// ValidationError is a client-side check failure. It never reaches the
// network and is always recoverable by correcting the input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	ErrInvalidPhone      = &ValidationError{Field: "phone", Message: "phone must contain at least 10 digits"}
	ErrInvalidPostalCode = &ValidationError{Field: "zip", Message: "postal code must be exactly 6 digits"}
)
