package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/correction"
	"github.com/chronohr/attendance-backend-go/internal/domain/exception"
	"github.com/chronohr/attendance-backend-go/internal/domain/holiday"
	"github.com/chronohr/attendance-backend-go/internal/domain/rules"
	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Workflow guard violations carry current vs expected state.
	var stateConflict *correction.StateConflictError
	if errors.As(err, &stateConflict) {
		details := map[string]string{
			"current": string(stateConflict.Current),
		}
		if len(stateConflict.Expected) > 0 {
			expected := make([]string, 0, len(stateConflict.Expected))
			for _, s := range stateConflict.Expected {
				expected = append(expected, string(s))
			}
			details["expected"] = strings.Join(expected, ", ")
		}
		StateConflict(w, stateConflict.Error(), details)
		return
	}

	switch {
	// Attendance policy violations: each distinct, so the UI can tell
	// "you have no shift" from "your shift isn't approved yet".
	case errors.Is(err, attendance.ErrEmployeeTerminated),
		errors.Is(err, attendance.ErrEmployeeOnLeave),
		errors.Is(err, attendance.ErrRestDay):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrMalformedTimestamp):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrVersionConflict):
		Conflict(w, "Attendance record was modified concurrently, retry the request")
	case errors.Is(err, attendance.ErrRecordFinalised):
		Conflict(w, "Attendance record is finalised for payroll")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrAssignmentNotFound):
		NotFound(w, "No shift assignment covers this date")
	case errors.Is(err, shift.ErrAssignmentPending):
		Forbidden(w, "Shift assignment is pending approval")
	case errors.Is(err, shift.ErrAssignmentAlreadyApproved):
		Conflict(w, "Shift assignment already approved")

	// Correction domain errors
	case errors.Is(err, correction.ErrCorrectionNotFound):
		NotFound(w, "Correction request not found")

	// Exception domain errors
	case errors.Is(err, exception.ErrExceptionNotFound):
		NotFound(w, "Time exception not found")
	case errors.Is(err, exception.ErrExceptionAlreadyProcessed):
		Conflict(w, "Time exception has already been approved or rejected")

	// Rule and holiday reference data
	case errors.Is(err, rules.ErrLatenessRuleNotFound):
		NotFound(w, "Lateness rule not found")
	case errors.Is(err, rules.ErrOvertimeRuleNotFound):
		NotFound(w, "Overtime rule not found")
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists on this date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
