package attendance

import (
	"context"
	"time"
)

// AttendanceService is the punch ledger. It exclusively owns AttendanceRecord
// mutation; rule engines and reporting only read the records it produces.
type AttendanceService interface {
	// ClockIn validates the employee may attend (not terminated, not on
	// leave, shift assignment approved and not a rest day), then appends an
	// IN punch to the day's record, creating it on first clock-in.
	ClockIn(ctx context.Context, req ClockRequest) (RecordResponse, error)

	// ClockOut appends an OUT punch and recomputes worked minutes. Fails
	// with ErrNotClockedIn when no record with punches exists for the day.
	ClockOut(ctx context.Context, req ClockRequest) (RecordResponse, error)

	// ApplyCorrection replaces or inserts the first IN/OUT punches of a
	// record. Invoked by the correction workflow after final approval, or
	// directly by HR.
	ApplyCorrection(ctx context.Context, recordID string, patch CorrectionPatch) (RecordResponse, error)

	// GetToday returns the employee's record for the current UTC day.
	GetToday(ctx context.Context, employeeID string) (RecordResponse, error)

	// GetRecord returns the employee's record for a specific day.
	GetRecord(ctx context.Context, employeeID string, date time.Time) (RecordResponse, error)
}
