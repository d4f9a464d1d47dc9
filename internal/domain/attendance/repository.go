package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records and their
// punches. Punches are persisted alongside the record and always returned
// ordered by time.
type AttendanceRepository interface {
	// Create inserts a new record with its punches.
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)

	// GetByID retrieves a record with punches.
	GetByID(ctx context.Context, id string) (AttendanceRecord, error)

	// GetByEmployeeAndDate retrieves the record for an employee-day, or
	// ErrRecordNotFound.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (AttendanceRecord, error)

	// Update persists the record and its punch list. The write checks
	// record.Version against the stored row and fails with
	// ErrVersionConflict on mismatch.
	Update(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)

	// ListByDay returns all records having at least one punch inside the
	// UTC day bounds.
	ListByDay(ctx context.Context, dayStart, dayEnd time.Time) ([]AttendanceRecord, error)

	// ListByEmployeeAndRange returns an employee's records with date inside
	// [from, to], ordered by date.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]AttendanceRecord, error)
}
