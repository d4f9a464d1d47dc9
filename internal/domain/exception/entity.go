package exception

import "time"

type Type string

const (
	TypeMissedPunch      Type = "MISSED_PUNCH"
	TypeLate             Type = "LATE"
	TypeEarlyLeave       Type = "EARLY_LEAVE"
	TypeShortTime        Type = "SHORT_TIME"
	TypeOvertimeRequest  Type = "OVERTIME_REQUEST"
	TypeManualAdjustment Type = "MANUAL_ADJUSTMENT"
)

var TypeValues = []string{
	string(TypeMissedPunch),
	string(TypeLate),
	string(TypeEarlyLeave),
	string(TypeShortTime),
	string(TypeOvertimeRequest),
	string(TypeManualAdjustment),
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// TimeException records a claimed attendance irregularity, approved
// independently of the record it references.
type TimeException struct {
	ID                 string
	EmployeeID         string
	AttendanceRecordID string
	Type               Type
	Reason             string
	Status             Status

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}
