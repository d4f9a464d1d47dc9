package rules

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/exception"
	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
)

// LatenessVerdict is the lateness engine output. Deduction feeds payroll; the
// rest is advisory.
type LatenessVerdict struct {
	IsLate                bool
	MinutesLate           int // raw clock-in minus shift start, before grace
	MinutesLateAfterGrace int
	Deduction             decimal.Decimal
	GracePeriodApplied    bool
	Message               string
}

// EvaluateLateness compares the record's first clock-in against the shift's
// start time on the same calendar date. Lateness inside the grace period is
// not flagged. Pure; safe to run in parallel across employees.
func EvaluateLateness(rec attendance.AttendanceRecord, sh shift.Shift, rule LatenessRule) LatenessVerdict {
	firstIn := rec.FirstIn()
	if firstIn == nil || sh.StartTime == "" {
		return LatenessVerdict{
			Deduction: decimal.Zero,
			Message:   "no clock-in or shift start time; lateness not evaluated",
		}
	}

	shiftStart, err := shift.OnDate(sh.StartTime, firstIn.Time)
	if err != nil {
		return LatenessVerdict{
			Deduction: decimal.Zero,
			Message:   fmt.Sprintf("shift start time %q is not a valid HH:mm clock time", sh.StartTime),
		}
	}

	minutesLate := int(firstIn.Time.Sub(shiftStart) / time.Minute)
	if minutesLate < 0 {
		minutesLate = 0
	}

	afterGrace := minutesLate - rule.GracePeriodMinutes
	if afterGrace < 0 {
		afterGrace = 0
	}

	v := LatenessVerdict{
		IsLate:                afterGrace > 0,
		MinutesLate:           minutesLate,
		MinutesLateAfterGrace: afterGrace,
		Deduction:             rule.DeductionForEachMinute.Mul(decimal.NewFromInt(int64(afterGrace))),
		GracePeriodApplied:    minutesLate > 0 && afterGrace < minutesLate,
	}
	if v.IsLate {
		v.Message = fmt.Sprintf("late by %d minutes after %d minutes grace", afterGrace, rule.GracePeriodMinutes)
	} else if minutesLate > 0 {
		v.Message = fmt.Sprintf("arrived %d minutes late, within the %d minute grace period", minutesLate, rule.GracePeriodMinutes)
	} else {
		v.Message = "on time"
	}
	return v
}

// OvertimeVerdict is the overtime engine output. RequiresApproval and
// IsApproved are independent of detection so payout can be gated separately.
type OvertimeVerdict struct {
	HasOvertime      bool
	OvertimeMinutes  int
	RequiresApproval bool
	IsApproved       bool
	Message          string
}

// EvaluateOvertime measures the last clock-out past the shift's end time on
// the same calendar date. An inactive rule short-circuits evaluation.
func EvaluateOvertime(rec attendance.AttendanceRecord, sh shift.Shift, rule OvertimeRule) OvertimeVerdict {
	if !rule.Active {
		return OvertimeVerdict{Message: "overtime rule is inactive"}
	}

	lastOut := rec.LastOut()
	if lastOut == nil || sh.EndTime == "" {
		return OvertimeVerdict{
			RequiresApproval: sh.OvertimeRequiresApproval,
			IsApproved:       rule.Approved,
			Message:          "no clock-out or shift end time; overtime not evaluated",
		}
	}

	shiftEnd, err := shift.OnDate(sh.EndTime, lastOut.Time)
	if err != nil {
		return OvertimeVerdict{
			RequiresApproval: sh.OvertimeRequiresApproval,
			IsApproved:       rule.Approved,
			Message:          fmt.Sprintf("shift end time %q is not a valid HH:mm clock time", sh.EndTime),
		}
	}

	overtime := int(lastOut.Time.Sub(shiftEnd) / time.Minute)
	if overtime < 0 {
		overtime = 0
	}

	v := OvertimeVerdict{
		HasOvertime:      overtime > 0,
		OvertimeMinutes:  overtime,
		RequiresApproval: sh.OvertimeRequiresApproval,
		IsApproved:       rule.Approved,
	}
	if v.HasOvertime {
		v.Message = fmt.Sprintf("worked %d minutes past shift end", overtime)
	} else {
		v.Message = "no overtime"
	}
	return v
}

// ExceptionVerdict describes how downstream consumers should treat a record
// carrying a time exception. Advisory only; nothing here mutates the record.
type ExceptionVerdict struct {
	ShouldExcuseAbsence    bool
	ShouldExcuseLateness   bool
	ShouldExcuseEarlyLeave bool
	ShouldAdjustHours      bool
	RequiresManagerReview  bool
	Message                string
	SuggestedAction        string
}

// EvaluateException derives the effects of a time exception from its type and
// approval status.
func EvaluateException(exc exception.TimeException) ExceptionVerdict {
	approved := exc.Status == exception.StatusApproved

	switch exc.Type {
	case exception.TypeMissedPunch:
		return ExceptionVerdict{
			ShouldExcuseAbsence:   approved,
			ShouldAdjustHours:     approved,
			RequiresManagerReview: !approved,
			Message:               "missed punch claimed; hours adjusted once approved",
			SuggestedAction:       "verify actual working time with the employee",
		}
	case exception.TypeLate:
		return ExceptionVerdict{
			ShouldExcuseLateness:  approved,
			RequiresManagerReview: !approved,
			Message:               "lateness claimed as excusable",
			SuggestedAction:       "waive the lateness deduction if the reason holds",
		}
	case exception.TypeEarlyLeave:
		return ExceptionVerdict{
			ShouldExcuseEarlyLeave: approved,
			RequiresManagerReview:  !approved,
			Message:                "early leave claimed as excusable",
			SuggestedAction:        "confirm the early departure was sanctioned",
		}
	case exception.TypeShortTime:
		return ExceptionVerdict{
			ShouldAdjustHours:     approved,
			RequiresManagerReview: !approved,
			Message:               "short working time claimed",
			SuggestedAction:       "review the recorded hours against the shift",
		}
	case exception.TypeOvertimeRequest:
		return ExceptionVerdict{
			ShouldAdjustHours:     approved,
			RequiresManagerReview: !approved,
			Message:               "overtime claimed for payout",
			SuggestedAction:       "approve the overtime before the payroll run",
		}
	case exception.TypeManualAdjustment:
		return ExceptionVerdict{
			ShouldAdjustHours:     approved,
			RequiresManagerReview: true,
			Message:               "manual adjustment requested; always reviewed",
			SuggestedAction:       "apply the adjustment through a correction request",
		}
	default:
		return ExceptionVerdict{
			RequiresManagerReview: true,
			Message:               fmt.Sprintf("unknown exception type %q", exc.Type),
			SuggestedAction:       "review manually",
		}
	}
}
