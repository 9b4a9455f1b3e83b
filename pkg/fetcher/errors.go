package fetcher

import (
	"fmt"
)

// RemoteError is an upstream reported failure: either a non-success HTTP status
// or a success status whose body carries a non-zero internal status.
type RemoteError struct {
	StatusCode   int
	InternalCode int
	Message      string
}

func (e *RemoteError) Error() string {
	if e.InternalCode != 0 {
		if e.Message != "" {
			return fmt.Sprintf("remote error: internal status %d: %s", e.InternalCode, e.Message)
		}
		return fmt.Sprintf("remote error: internal status %d", e.InternalCode)
	}

	return fmt.Sprintf("remote error: HTTP status %d", e.StatusCode)
}

// TransportError is a connectivity failure (timeout, refused/reset connection, DNS)
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// MalformedResponseError means the body did not match the expected contract
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func malformed(format string, args ...any) error {
	return &MalformedResponseError{Err: fmt.Errorf(format, args...)}
}
