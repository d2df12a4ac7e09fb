package netwrk

import (
	"errors"
	"fmt"
)

var ErrNoPoints = errors.New("response has no points")

// NetworkError means the request never produced a usable reply: transport
// failure, timeout or a non-2xx status.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProtocolError means a reply arrived but could not be understood.
type ProtocolError struct {
	URL string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s: %v", e.URL, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }
