package exception

import (
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

type CreateExceptionRequest struct {
	EmployeeID         string `json:"employee_id"`
	AttendanceRecordID string `json:"attendance_record_id"`
	Type               string `json:"type"`
	Reason             string `json:"reason"`
}

func (r *CreateExceptionRequest) Validate() error {
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
	if !validator.IsInSlice(r.Type, TypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be a known exception type",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ExceptionResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	EmployeeName       *string `json:"employee_name,omitempty"`
	AttendanceRecordID string  `json:"attendance_record_id"`
	Type               string  `json:"type"`
	Reason             string  `json:"reason"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

func ToResponse(e TimeException) ExceptionResponse {
	return ExceptionResponse{
		ID:                 e.ID,
		EmployeeID:         e.EmployeeID,
		EmployeeName:       e.EmployeeName,
		AttendanceRecordID: e.AttendanceRecordID,
		Type:               string(e.Type),
		Reason:             e.Reason,
		Status:             string(e.Status),
		CreatedAt:          e.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:          e.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
