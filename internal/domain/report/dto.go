package report

import (
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// REPORT DTOs
// ========================================

type DailyReportRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

func (r *DailyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DailyReportResponse struct {
	Date    string                      `json:"date"`
	Records []attendance.RecordResponse `json:"records"`
}

type MonthlyReportRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.Year < 1970 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MonthlyReportResponse struct {
	EmployeeID       string `json:"employee_id"`
	Month            int    `json:"month"`
	Year             int    `json:"year"`
	TotalWorkingDays int    `json:"total_working_days"` // days in the month
	DaysPresent      int    `json:"days_present"`
	DaysAbsent       int    `json:"days_absent"`
	Holidays         int    `json:"holidays"`
	TotalWorkMinutes int    `json:"total_work_minutes"`
	LateCount        int    `json:"late_count"`
	OvertimeMinutes  int    `json:"overtime_minutes"`
}

// MonthBounds returns the UTC first and last instants of the month.
func MonthBounds(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// DaysInMonth returns the number of calendar days in the month.
func DaysInMonth(month, year int) int {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, 1, -1).Day()
}
