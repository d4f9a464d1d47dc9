package correction

import (
	"time"

	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// CORRECTION DTOs
// ========================================

type CreateCorrectionRequest struct {
	EmployeeID         string  `json:"employee_id"`
	AttendanceRecordID string  `json:"attendance_record_id"`
	ClockIn            *string `json:"clock_in,omitempty"`
	ClockOut           *string `json:"clock_out,omitempty"`
	Reason             string  `json:"reason"`
	ManagerID          string  `json:"manager_id"`

	// Ignored on create; every request starts submitted.
	Status string `json:"status,omitempty"`
}

func (r *CreateCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.AttendanceRecordID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_record_id",
			Message: "attendance_record_id is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if validator.IsEmpty(r.ManagerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "manager_id",
			Message: "manager_id is required",
		})
	}
	if r.ClockIn == nil && r.ClockOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "at least one of clock_in or clock_out is required",
		})
	}
	if r.ClockIn != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in",
				Message: "clock_in must be an ISO8601 datetime",
			})
		}
	}
	if r.ClockOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be an ISO8601 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CorrectionResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       *string `json:"employee_name,omitempty"`
	AttendanceRecordID string  `json:"attendance_record_id"`
	RequestedClockIn   *string `json:"requested_clock_in,omitempty"`
	RequestedClockOut  *string `json:"requested_clock_out,omitempty"`
	Reason             string  `json:"reason"`
	ManagerID          string  `json:"manager_id"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

func ToResponse(req CorrectionRequest) CorrectionResponse {
	fmtTime := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.UTC().Format(time.RFC3339)
		return &s
	}
	return CorrectionResponse{
		ID:                 req.ID,
		EmployeeID:         req.EmployeeID,
		EmployeeName:       req.EmployeeName,
		AttendanceRecordID: req.AttendanceRecordID,
		RequestedClockIn:   fmtTime(req.RequestedClockIn),
		RequestedClockOut:  fmtTime(req.RequestedClockOut),
		Reason:             req.Reason,
		ManagerID:          req.ManagerID,
		Status:             string(req.Status),
		CreatedAt:          req.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:          req.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
