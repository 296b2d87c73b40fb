package digest

import (
	"errors"
	"fmt"
)

// ErrUnknownCollection is returned when a word names no collection. Callers
// treat it as a routing miss rather than a failure.
var ErrUnknownCollection = errors.New("unknown collection word")

// MalformedDateError represents a date component that is not a number
type MalformedDateError struct {
	Field string
	Value string
}

func (e MalformedDateError) Error() string {
	return fmt.Sprintf("malformed %s %q", e.Field, e.Value)
}
