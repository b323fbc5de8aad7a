package client

import (
	"errors"
	"fmt"
)

// ErrAttendanceRejected is returned when the endpoint answers success:false.
var ErrAttendanceRejected = errors.New("attendance rejected by endpoint")

// NetworkError is a transport failure or a response that is not JSON.
type NetworkError struct {
	Op     string // send, read or decode
	Status int    // HTTP status, zero if no response arrived
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("network error (%s, status %d): %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("network error (%s): %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
