package shift

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type ShiftType string

const (
	ShiftTypeNormal     ShiftType = "normal"
	ShiftTypeOvernight  ShiftType = "overnight"
	ShiftTypeSplit      ShiftType = "split"
	ShiftTypeRotational ShiftType = "rotational"
)

var ShiftTypeValues = []string{
	string(ShiftTypeNormal),
	string(ShiftTypeOvernight),
	string(ShiftTypeSplit),
	string(ShiftTypeRotational),
}

// Shift is reference data: the wall-clock definition of a work shift.
// Start and end are "HH:mm" strings local to the shift.
type Shift struct {
	ID                 string
	Name               string
	StartTime          string
	EndTime            string
	Type               ShiftType
	GracePeriodMinutes int

	// Policy flag consumed by the overtime engine: overtime past this
	// shift's end needs explicit approval before payout.
	OvertimeRequiresApproval bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OnDate projects an "HH:mm" wall-clock string onto the calendar date of ref,
// in ref's location.
func OnDate(clock string, ref time.Time) (time.Time, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid clock time %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q", clock)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return time.Time{}, fmt.Errorf("invalid clock time %q", clock)
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), h, m, 0, 0, ref.Location()), nil
}

type AssignmentStatus string

const (
	AssignmentStatusPending  AssignmentStatus = "pending"
	AssignmentStatusApproved AssignmentStatus = "approved"
	AssignmentStatusExpired  AssignmentStatus = "expired"
)

// ShiftAssignment binds an employee to a shift for a date range. At most one
// approved assignment should cover an employee-day; the store does not
// enforce non-overlap (see Resolve for the tie-break actually applied).
type ShiftAssignment struct {
	ID         string
	EmployeeID string
	ShiftID    string
	StartDate  time.Time
	EndDate    *time.Time
	RestDays   []string // weekday names, e.g. "saturday"
	Status     AssignmentStatus

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	ShiftName *string
}

// Covers reports whether the assignment's date range includes the given UTC day.
func (a *ShiftAssignment) Covers(dayStart, dayEnd time.Time) bool {
	if a.StartDate.After(dayEnd) {
		return false
	}
	return a.EndDate == nil || !a.EndDate.Before(dayStart)
}

// IsRestDay reports whether date's weekday is one of the assignment's rest days.
func (a *ShiftAssignment) IsRestDay(date time.Time) bool {
	name := strings.ToLower(date.UTC().Weekday().String())
	for _, d := range a.RestDays {
		if strings.ToLower(d) == name {
			return true
		}
	}
	return false
}

// Resolve picks the assignment governing date from candidate rows already
// filtered to the employee. Approved assignments win; when several approved
// rows overlap the day the latest StartDate is taken (the store does not
// prevent overlap, so the choice has to be deterministic). With no approved
// cover but a pending one, ErrAssignmentPending distinguishes "not approved
// yet" from "no shift at all".
func Resolve(candidates []ShiftAssignment, date time.Time) (ShiftAssignment, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999000000, time.UTC)

	var best *ShiftAssignment
	pending := false
	for i := range candidates {
		a := &candidates[i]
		if !a.Covers(dayStart, dayEnd) {
			continue
		}
		switch a.Status {
		case AssignmentStatusApproved:
			if best == nil || a.StartDate.After(best.StartDate) {
				best = a
			}
		case AssignmentStatusPending:
			pending = true
		}
	}

	if best != nil {
		return *best, nil
	}
	if pending {
		return ShiftAssignment{}, ErrAssignmentPending
	}
	return ShiftAssignment{}, ErrAssignmentNotFound
}
