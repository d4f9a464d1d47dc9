package rules

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/exception"
	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
)

func recordWithPunches(punches ...attendance.Punch) attendance.AttendanceRecord {
	return attendance.AttendanceRecord{
		ID:         "rec-1",
		EmployeeID: "emp-1",
		Date:       time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Punches:    punches,
	}
}

func punchAt(t attendance.PunchType, hour, minute int) attendance.Punch {
	return attendance.Punch{
		Type: t,
		Time: time.Date(2024, 3, 4, hour, minute, 0, 0, time.UTC),
	}
}

func TestEvaluateLateness(t *testing.T) {
	nineToFive := shift.Shift{StartTime: "09:00", EndTime: "17:00"}
	rule := LatenessRule{
		GracePeriodMinutes:     15,
		DeductionForEachMinute: decimal.NewFromInt(2),
	}

	t.Run("within grace period is not late", func(t *testing.T) {
		rec := recordWithPunches(punchAt(attendance.PunchIn, 9, 10))

		v := EvaluateLateness(rec, nineToFive, rule)

		assert.False(t, v.IsLate)
		assert.Equal(t, 10, v.MinutesLate)
		assert.Equal(t, 0, v.MinutesLateAfterGrace)
		assert.True(t, v.Deduction.IsZero())
		assert.True(t, v.GracePeriodApplied)
	})

	t.Run("past grace period is late with deduction", func(t *testing.T) {
		rec := recordWithPunches(punchAt(attendance.PunchIn, 9, 20))

		v := EvaluateLateness(rec, nineToFive, rule)

		assert.True(t, v.IsLate)
		assert.Equal(t, 20, v.MinutesLate)
		assert.Equal(t, 5, v.MinutesLateAfterGrace)
		assert.True(t, decimal.NewFromInt(10).Equal(v.Deduction))
	})

	t.Run("on time", func(t *testing.T) {
		rec := recordWithPunches(punchAt(attendance.PunchIn, 8, 55))

		v := EvaluateLateness(rec, nineToFive, rule)

		assert.False(t, v.IsLate)
		assert.Equal(t, 0, v.MinutesLate)
		assert.False(t, v.GracePeriodApplied)
		assert.True(t, v.Deduction.IsZero())
	})

	t.Run("no clock-in yields zero result with message", func(t *testing.T) {
		rec := recordWithPunches(punchAt(attendance.PunchOut, 17, 0))

		v := EvaluateLateness(rec, nineToFive, rule)

		assert.False(t, v.IsLate)
		assert.True(t, v.Deduction.IsZero())
		assert.NotEmpty(t, v.Message)
	})

	t.Run("no shift start yields zero result", func(t *testing.T) {
		rec := recordWithPunches(punchAt(attendance.PunchIn, 9, 30))

		v := EvaluateLateness(rec, shift.Shift{}, rule)

		assert.False(t, v.IsLate)
		assert.True(t, v.Deduction.IsZero())
	})

	t.Run("zero grace deducts from the first minute", func(t *testing.T) {
		rec := recordWithPunches(punchAt(attendance.PunchIn, 9, 3))
		noGrace := LatenessRule{DeductionForEachMinute: decimal.RequireFromString("1.5")}

		v := EvaluateLateness(rec, nineToFive, noGrace)

		assert.True(t, v.IsLate)
		assert.Equal(t, 3, v.MinutesLateAfterGrace)
		assert.True(t, decimal.RequireFromString("4.5").Equal(v.Deduction))
		assert.False(t, v.GracePeriodApplied)
	})
}

func TestEvaluateOvertime(t *testing.T) {
	nineToFive := shift.Shift{StartTime: "09:00", EndTime: "17:00", OvertimeRequiresApproval: true}
	active := OvertimeRule{Active: true, Approved: true}

	t.Run("clock-out past shift end", func(t *testing.T) {
		rec := recordWithPunches(punchAt(attendance.PunchIn, 9, 0), punchAt(attendance.PunchOut, 18, 30))

		v := EvaluateOvertime(rec, nineToFive, active)

		assert.True(t, v.HasOvertime)
		assert.Equal(t, 90, v.OvertimeMinutes)
		assert.True(t, v.RequiresApproval)
		assert.True(t, v.IsApproved)
	})

	t.Run("clock-out before shift end", func(t *testing.T) {
		rec := recordWithPunches(punchAt(attendance.PunchIn, 9, 0), punchAt(attendance.PunchOut, 16, 0))

		v := EvaluateOvertime(rec, nineToFive, active)

		assert.False(t, v.HasOvertime)
		assert.Equal(t, 0, v.OvertimeMinutes)
	})

	t.Run("inactive rule short-circuits", func(t *testing.T) {
		rec := recordWithPunches(punchAt(attendance.PunchIn, 9, 0), punchAt(attendance.PunchOut, 20, 0))

		v := EvaluateOvertime(rec, nineToFive, OvertimeRule{Active: false})

		assert.False(t, v.HasOvertime)
		assert.Equal(t, 0, v.OvertimeMinutes)
		assert.Equal(t, "overtime rule is inactive", v.Message)
	})

	t.Run("approval flags independent of detection", func(t *testing.T) {
		rec := recordWithPunches(punchAt(attendance.PunchIn, 9, 0), punchAt(attendance.PunchOut, 16, 0))

		v := EvaluateOvertime(rec, nineToFive, OvertimeRule{Active: true, Approved: false})

		assert.False(t, v.HasOvertime)
		assert.True(t, v.RequiresApproval)
		assert.False(t, v.IsApproved)
	})

	t.Run("no clock-out is not evaluated", func(t *testing.T) {
		rec := recordWithPunches(punchAt(attendance.PunchIn, 9, 0))

		v := EvaluateOvertime(rec, nineToFive, active)

		assert.False(t, v.HasOvertime)
		assert.NotEmpty(t, v.Message)
	})
}

func TestEvaluateException(t *testing.T) {
	tests := []struct {
		name    string
		excType exception.Type
		status  exception.Status
		want    ExceptionVerdict
	}{
		{
			name:    "approved missed punch excuses absence and adjusts hours",
			excType: exception.TypeMissedPunch,
			status:  exception.StatusApproved,
			want: ExceptionVerdict{
				ShouldExcuseAbsence:   true,
				ShouldAdjustHours:     true,
				RequiresManagerReview: false,
			},
		},
		{
			name:    "pending missed punch needs review, excuses nothing",
			excType: exception.TypeMissedPunch,
			status:  exception.StatusPending,
			want: ExceptionVerdict{
				RequiresManagerReview: true,
			},
		},
		{
			name:    "approved late excuses lateness only",
			excType: exception.TypeLate,
			status:  exception.StatusApproved,
			want: ExceptionVerdict{
				ShouldExcuseLateness: true,
			},
		},
		{
			name:    "approved early leave",
			excType: exception.TypeEarlyLeave,
			status:  exception.StatusApproved,
			want: ExceptionVerdict{
				ShouldExcuseEarlyLeave: true,
			},
		},
		{
			name:    "rejected short time adjusts nothing",
			excType: exception.TypeShortTime,
			status:  exception.StatusRejected,
			want: ExceptionVerdict{
				RequiresManagerReview: true,
			},
		},
		{
			name:    "approved overtime request adjusts hours",
			excType: exception.TypeOvertimeRequest,
			status:  exception.StatusApproved,
			want: ExceptionVerdict{
				ShouldAdjustHours: true,
			},
		},
		{
			name:    "manual adjustment always needs review",
			excType: exception.TypeManualAdjustment,
			status:  exception.StatusApproved,
			want: ExceptionVerdict{
				ShouldAdjustHours:     true,
				RequiresManagerReview: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := EvaluateException(exception.TimeException{Type: tt.excType, Status: tt.status})

			assert.Equal(t, tt.want.ShouldExcuseAbsence, v.ShouldExcuseAbsence)
			assert.Equal(t, tt.want.ShouldExcuseLateness, v.ShouldExcuseLateness)
			assert.Equal(t, tt.want.ShouldExcuseEarlyLeave, v.ShouldExcuseEarlyLeave)
			assert.Equal(t, tt.want.ShouldAdjustHours, v.ShouldAdjustHours)
			assert.Equal(t, tt.want.RequiresManagerReview, v.RequiresManagerReview)
			assert.NotEmpty(t, v.Message)
			assert.NotEmpty(t, v.SuggestedAction)
		})
	}

	t.Run("unknown type falls back to manual review", func(t *testing.T) {
		v := EvaluateException(exception.TimeException{Type: "WEIRD", Status: exception.StatusApproved})

		assert.True(t, v.RequiresManagerReview)
		assert.False(t, v.ShouldAdjustHours)
	})
}
