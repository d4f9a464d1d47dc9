package correction

import "time"

type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusInReview  Status = "in_review"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusEscalated Status = "escalated"
)

// CorrectionRequest is an employee's dispute over a day's punches. Created in
// submitted state regardless of caller input, mutated only through Transition,
// never deleted.
type CorrectionRequest struct {
	ID                 string
	EmployeeID         string
	AttendanceRecordID string
	RequestedClockIn   *time.Time
	RequestedClockOut  *time.Time
	Reason             string
	ManagerID          string
	Status             Status

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// IsTerminal reports whether no further transitions are expected. Escalated
// is deliberately not terminal: it flags the request for manual handling.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}
