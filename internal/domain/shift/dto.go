package shift

import (
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// SHIFT DTOs
// ========================================

type CreateShiftRequest struct {
	Name                     string `json:"name"`
	StartTime                string `json:"start_time"` // "HH:mm"
	EndTime                  string `json:"end_time"`   // "HH:mm"
	Type                     string `json:"type"`
	GracePeriodMinutes       int    `json:"grace_period_minutes"`
	OvertimeRequiresApproval bool   `json:"overtime_requires_approval"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if !validator.IsValidClockTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be HH:mm",
		})
	}
	if !validator.IsValidClockTime(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be HH:mm",
		})
	}
	if !validator.IsInSlice(r.Type, ShiftTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of normal, overnight, split, rotational",
		})
	}
	if r.GracePeriodMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_period_minutes",
			Message: "grace_period_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftResponse struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	StartTime                string `json:"start_time"`
	EndTime                  string `json:"end_time"`
	Type                     string `json:"type"`
	GracePeriodMinutes       int    `json:"grace_period_minutes"`
	OvertimeRequiresApproval bool   `json:"overtime_requires_approval"`
	CreatedAt                string `json:"created_at"`
	UpdatedAt                string `json:"updated_at"`
}

func ToShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:                       s.ID,
		Name:                     s.Name,
		StartTime:                s.StartTime,
		EndTime:                  s.EndTime,
		Type:                     string(s.Type),
		GracePeriodMinutes:       s.GracePeriodMinutes,
		OvertimeRequiresApproval: s.OvertimeRequiresApproval,
		CreatedAt:                s.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:                s.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ========================================
// ASSIGNMENT DTOs
// ========================================

type AssignShiftRequest struct {
	EmployeeID string   `json:"employee_id"`
	ShiftID    string   `json:"shift_id"`
	StartDate  string   `json:"start_date"` // YYYY-MM-DD
	EndDate    *string  `json:"end_date,omitempty"`
	RestDays   []string `json:"rest_days,omitempty"`
}

func (r *AssignShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD",
		})
	}
	if r.EndDate != nil && *r.EndDate != "" {
		end, endOK := validator.IsValidDate(*r.EndDate)
		if !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be YYYY-MM-DD",
			})
		} else if startOK && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	for _, day := range r.RestDays {
		if _, ok := validator.ParseWeekday(day); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "rest_days",
				Message: "rest_days must contain weekday names",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignmentResponse struct {
	ID         string   `json:"id"`
	EmployeeID string   `json:"employee_id"`
	ShiftID    string   `json:"shift_id"`
	ShiftName  *string  `json:"shift_name,omitempty"`
	StartDate  string   `json:"start_date"`
	EndDate    *string  `json:"end_date,omitempty"`
	RestDays   []string `json:"rest_days,omitempty"`
	Status     string   `json:"status"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

func ToAssignmentResponse(a ShiftAssignment) AssignmentResponse {
	var endDate *string
	if a.EndDate != nil {
		s := a.EndDate.Format("2006-01-02")
		endDate = &s
	}
	return AssignmentResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		ShiftID:    a.ShiftID,
		ShiftName:  a.ShiftName,
		StartDate:  a.StartDate.Format("2006-01-02"),
		EndDate:    endDate,
		RestDays:   a.RestDays,
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:  a.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

type AssignmentFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AssignmentFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Status != nil && *f.Status != "" {
		valid := []string{
			string(AssignmentStatusPending),
			string(AssignmentStatusApproved),
			string(AssignmentStatusExpired),
		}
		if !validator.IsInSlice(*f.Status, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of pending, approved, expired",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ResolvedShift bundles the governing assignment with its shift definition;
// what the punch ledger needs to admit a clock-in.
type ResolvedShift struct {
	Assignment ShiftAssignment
	Shift      Shift
}
