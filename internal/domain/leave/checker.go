// Package leave exposes the slice of the leave system the attendance core
// consumes. Leave approval and balance tracking live elsewhere; the punch
// ledger only asks one question.
package leave

import (
	"context"
	"time"
)

// Checker reports whether an employee is on approved leave on a date.
type Checker interface {
	IsOnLeave(ctx context.Context, employeeID string, date time.Time) (bool, error)
}
