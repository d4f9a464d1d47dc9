package shift

import (
	"context"
	"time"
)

// ShiftRepository holds shift definitions (reference data).
type ShiftRepository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	List(ctx context.Context) ([]Shift, error)
	Update(ctx context.Context, shift Shift) error
	Delete(ctx context.Context, id string) error
}

// AssignmentRepository holds shift assignments. The resolver reads candidate
// rows through ListCovering; the selection itself is done in Resolve.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment ShiftAssignment) (ShiftAssignment, error)
	GetByID(ctx context.Context, id string) (ShiftAssignment, error)

	// ListCovering returns the employee's assignments whose date range
	// intersects [dayStart, dayEnd], any status.
	ListCovering(ctx context.Context, employeeID string, dayStart, dayEnd time.Time) ([]ShiftAssignment, error)

	List(ctx context.Context, filter AssignmentFilter) ([]ShiftAssignment, int64, error)
	UpdateStatus(ctx context.Context, id string, status AssignmentStatus) error
	Delete(ctx context.Context, id string) error

	// ExpireEnded flips approved assignments whose end date has passed to
	// expired, returning how many rows changed.
	ExpireEnded(ctx context.Context, asOf time.Time) (int64, error)
}

// ScheduleService resolves which shift governs an employee-day and
// administers assignments and shift definitions.
type ScheduleService interface {
	// Resolve returns the governing assignment and its shift for the date,
	// or ErrAssignmentPending / ErrAssignmentNotFound. Pure read.
	Resolve(ctx context.Context, employeeID string, date time.Time) (ResolvedShift, error)

	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	ListShifts(ctx context.Context) ([]ShiftResponse, error)
	DeleteShift(ctx context.Context, id string) error

	Assign(ctx context.Context, req AssignShiftRequest) (AssignmentResponse, error)
	ApproveAssignment(ctx context.Context, id string) (AssignmentResponse, error)
	ListAssignments(ctx context.Context, filter AssignmentFilter) ([]AssignmentResponse, int64, error)
	DeleteAssignment(ctx context.Context, id string) error
}
