// Package offboarding exposes the slice of the offboarding system the
// attendance core consumes.
package offboarding

import (
	"context"
	"time"
)

// Checker reports whether an employee is terminated as of a date.
type Checker interface {
	IsTerminated(ctx context.Context, employeeID string, date time.Time) (bool, error)
}
