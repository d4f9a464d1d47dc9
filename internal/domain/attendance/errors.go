package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in gates
	ErrEmployeeTerminated = errors.New("employee is terminated as of this date")
	ErrEmployeeOnLeave    = errors.New("employee is on approved leave for this date")
	ErrRestDay            = errors.New("clock-in rejected: assigned shift rest day")

	// Punch sequencing
	ErrNotClockedIn = errors.New("must clock in before clocking out")

	// General errors
	ErrMalformedTimestamp = errors.New("timestamp is not a valid ISO8601 datetime")
	ErrRecordNotFound     = errors.New("attendance record not found")
	ErrVersionConflict    = errors.New("attendance record was modified concurrently")
	ErrRecordFinalised    = errors.New("attendance record is finalised for payroll")
)
