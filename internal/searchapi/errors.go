package searchapi

import (
	"errors"
	"fmt"
)

var errUnexpectedStatus = errors.New("unexpected status")

// UpstreamError represents a failed call to the search API: the request could
// not be made, the status was not 2xx, or the body did not match the schema
type UpstreamError struct {
	Op     string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
