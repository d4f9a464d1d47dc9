package shift

import "errors"

// Shift domain errors
var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrAssignmentNotFound = errors.New("no shift assignment covers this date")

	// Deliberate UX signal, not a data error: an assignment exists but has
	// not been approved yet.
	ErrAssignmentPending = errors.New("shift assignment is pending approval")

	ErrAssignmentAlreadyApproved = errors.New("shift assignment already approved")
)
