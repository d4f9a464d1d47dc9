package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	"github.com/chronohr/attendance-backend-go/internal/domain/offboarding"
	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
	"github.com/chronohr/attendance-backend-go/internal/pkg/keylock"
)

type attendanceServiceImpl struct {
	attendanceRepo  attendance.AttendanceRepository
	scheduleSvc     shift.ScheduleService
	leaveChecker    leave.Checker
	offboardChecker offboarding.Checker

	// Serializes mutations per employee-day; two concurrent clock-outs must
	// not both read the same punch list.
	locks *keylock.KeyLock
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	scheduleSvc shift.ScheduleService,
	leaveChecker leave.Checker,
	offboardChecker offboarding.Checker,
) attendance.AttendanceService {
	return &attendanceServiceImpl{
		attendanceRepo:  attendanceRepo,
		scheduleSvc:     scheduleSvc,
		leaveChecker:    leaveChecker,
		offboardChecker: offboardChecker,
		locks:           keylock.New(),
	}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + ":" + date.UTC().Format("2006-01-02")
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *attendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	punchTime, err := req.EffectiveTime()
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	date := midnight(punchTime)

	terminated, err := s.offboardChecker.IsTerminated(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check termination status: %w", err)
	}
	if terminated {
		return attendance.RecordResponse{}, attendance.ErrEmployeeTerminated
	}

	onLeave, err := s.leaveChecker.IsOnLeave(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check leave status: %w", err)
	}
	if onLeave {
		return attendance.RecordResponse{}, attendance.ErrEmployeeOnLeave
	}

	resolved, err := s.scheduleSvc.Resolve(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if resolved.Assignment.IsRestDay(date) {
		return attendance.RecordResponse{}, attendance.ErrRestDay
	}

	key := dayKey(req.EmployeeID, date)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if errors.Is(err, attendance.ErrRecordNotFound) {
		// First clock-in of the day creates the record.
		record = attendance.AttendanceRecord{
			EmployeeID: req.EmployeeID,
			Date:       date,
		}
		record.Append(attendance.Punch{Type: attendance.PunchIn, Time: punchTime})
		record.Recompute()

		created, err := s.attendanceRepo.Create(ctx, record)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
		}
		return attendance.ToResponse(created), nil
	}
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}
	if record.FinalisedForPayroll {
		return attendance.RecordResponse{}, attendance.ErrRecordFinalised
	}

	// A second IN with no OUT in between re-opens the accumulation window;
	// the pairing algorithm takes the later IN. Not rejected here.
	record.Append(attendance.Punch{RecordID: record.ID, Type: attendance.PunchIn, Time: punchTime})
	record.Recompute()

	updated, err := s.attendanceRepo.Update(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	return attendance.ToResponse(updated), nil
}

func (s *attendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	punchTime, err := req.EffectiveTime()
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	date := midnight(punchTime)

	key := dayKey(req.EmployeeID, date)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.RecordResponse{}, attendance.ErrNotClockedIn
	}
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}
	if len(record.Punches) == 0 {
		return attendance.RecordResponse{}, attendance.ErrNotClockedIn
	}
	if record.FinalisedForPayroll {
		return attendance.RecordResponse{}, attendance.ErrRecordFinalised
	}

	record.Append(attendance.Punch{RecordID: record.ID, Type: attendance.PunchOut, Time: punchTime})
	record.Recompute()

	updated, err := s.attendanceRepo.Update(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	return attendance.ToResponse(updated), nil
}

func (s *attendanceServiceImpl) ApplyCorrection(ctx context.Context, recordID string, patch attendance.CorrectionPatch) (attendance.RecordResponse, error) {
	if err := patch.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	// Load once outside the lock to learn the employee-day key.
	record, err := s.attendanceRepo.GetByID(ctx, recordID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	key := dayKey(record.EmployeeID, record.Date)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	record, err = s.attendanceRepo.GetByID(ctx, recordID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if record.FinalisedForPayroll {
		return attendance.RecordResponse{}, attendance.ErrRecordFinalised
	}

	if patch.ClockIn != nil {
		t, ok := parseTimestamp(*patch.ClockIn)
		if !ok {
			return attendance.RecordResponse{}, attendance.ErrMalformedTimestamp
		}
		record.SetClockIn(t)
	}
	if patch.ClockOut != nil {
		t, ok := parseTimestamp(*patch.ClockOut)
		if !ok {
			return attendance.RecordResponse{}, attendance.ErrMalformedTimestamp
		}
		record.SetClockOut(t)
	}
	record.Recompute()

	updated, err := s.attendanceRepo.Update(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to apply correction: %w", err)
	}
	return attendance.ToResponse(updated), nil
}

func (s *attendanceServiceImpl) GetToday(ctx context.Context, employeeID string) (attendance.RecordResponse, error) {
	return s.GetRecord(ctx, employeeID, time.Now().UTC())
}

func (s *attendanceServiceImpl) GetRecord(ctx context.Context, employeeID string, date time.Time) (attendance.RecordResponse, error) {
	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, midnight(date))
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	return attendance.ToResponse(record), nil
}

func parseTimestamp(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, s)
	}
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
