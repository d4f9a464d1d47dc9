package correction

import (
	"errors"
	"fmt"
	"strings"
)

// Correction domain errors
var (
	ErrCorrectionNotFound = errors.New("correction request not found")
)

// StateConflictError reports a workflow transition attempted from the wrong
// status. It carries both sides so callers can explain the conflict.
type StateConflictError struct {
	Event    Event
	Current  Status
	Expected []Status
}

func (e *StateConflictError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("cannot %s correction in status %q", e.Event, e.Current)
	}
	expected := make([]string, 0, len(e.Expected))
	for _, s := range e.Expected {
		expected = append(expected, string(s))
	}
	return fmt.Sprintf("cannot %s correction in status %q; expected %s",
		e.Event, e.Current, strings.Join(expected, " or "))
}
