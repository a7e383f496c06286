package domain

import (
	"errors"
	"fmt"
)

// RemoteFetchError reports a non-success HTTP status from the remote
// endpoint. The response body is not read when this error is produced.
type RemoteFetchError struct {
	Op         string
	StatusCode int
}

func (e *RemoteFetchError) Error() string {
	return fmt.Sprintf("%s: remote endpoint returned status %d", e.Op, e.StatusCode)
}

// NetworkError wraps a transport-level failure (connection refused, timeout,
// cancelled context) before any HTTP status was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Local validation failures short-circuit before any network call.
var (
	ErrFormInvalid = errors.New("form contains invalid fields")
	ErrEmptyCart   = errors.New("order must contain at least one item")
)
