package attendance

import (
	"time"

	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockRequest struct {
	EmployeeID string  `json:"employee_id"`
	Timestamp  *string `json:"timestamp,omitempty"` // ISO8601; defaults to now
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Timestamp != nil && *r.Timestamp != "" {
		if _, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be an ISO8601 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EffectiveTime resolves the request timestamp, defaulting to now (UTC).
// Validate must have accepted the request first.
func (r *ClockRequest) EffectiveTime() (time.Time, error) {
	if r.Timestamp == nil || *r.Timestamp == "" {
		return time.Now().UTC(), nil
	}
	t, ok := validator.IsValidDateTime(*r.Timestamp)
	if !ok {
		return time.Time{}, ErrMalformedTimestamp
	}
	return t.UTC(), nil
}

// CorrectionPatch carries the punch amendments applied to a record, either
// directly by HR or by the correction workflow on final approval.
type CorrectionPatch struct {
	ClockIn  *string `json:"clock_in,omitempty"`
	ClockOut *string `json:"clock_out,omitempty"`
}

func (p *CorrectionPatch) Validate() error {
	var errs validator.ValidationErrors

	if p.ClockIn == nil && p.ClockOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "at least one of clock_in or clock_out is required",
		})
	}
	if p.ClockIn != nil {
		if _, ok := validator.IsValidDateTime(*p.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in",
				Message: "clock_in must be an ISO8601 datetime",
			})
		}
	}
	if p.ClockOut != nil {
		if _, ok := validator.IsValidDateTime(*p.ClockOut); !ok {
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

type PunchResponse struct {
	Type string `json:"type"`
	Time string `json:"time"`
}

type RecordResponse struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	EmployeeName        *string         `json:"employee_name,omitempty"`
	Date                string          `json:"date"`
	Punches             []PunchResponse `json:"punches"`
	TotalWorkMinutes    int             `json:"total_work_minutes"`
	HasMissedPunch      bool            `json:"has_missed_punch"`
	ExceptionIDs        []string        `json:"exception_ids,omitempty"`
	FinalisedForPayroll bool            `json:"finalised_for_payroll"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
}

// ToResponse maps an AttendanceRecord entity to its response shape.
func ToResponse(rec AttendanceRecord) RecordResponse {
	punches := make([]PunchResponse, 0, len(rec.Punches))
	for _, p := range rec.Punches {
		punches = append(punches, PunchResponse{
			Type: string(p.Type),
			Time: p.Time.UTC().Format(time.RFC3339),
		})
	}
	return RecordResponse{
		ID:                  rec.ID,
		EmployeeID:          rec.EmployeeID,
		EmployeeName:        rec.EmployeeName,
		Date:                rec.Date.Format("2006-01-02"),
		Punches:             punches,
		TotalWorkMinutes:    rec.TotalWorkMinutes,
		HasMissedPunch:      rec.HasMissedPunch,
		ExceptionIDs:        rec.ExceptionIDs,
		FinalisedForPayroll: rec.FinalisedForPayroll,
		CreatedAt:           rec.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:           rec.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
