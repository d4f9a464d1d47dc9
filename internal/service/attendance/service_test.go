package attendance

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
)

// ===== IN-MEMORY FAKES =====

type fakeAttendanceRepo struct {
	mu    sync.Mutex
	seq   int
	store map[string]attendance.AttendanceRecord // keyed by employeeID:date
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{store: make(map[string]attendance.AttendanceRecord)}
}

func (f *fakeAttendanceRepo) key(employeeID string, date time.Time) string {
	return employeeID + ":" + date.UTC().Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	rec.ID = fmt.Sprintf("rec-%d", f.seq)
	rec.Version = 1
	rec.CreatedAt = time.Now().UTC()
	rec.UpdatedAt = rec.CreatedAt
	f.store[f.key(rec.EmployeeID, rec.Date)] = rec
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.store {
		if rec.ID == id {
			return rec, nil
		}
	}
	return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.store[f.key(employeeID, date)]
	if !ok {
		return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := f.key(rec.EmployeeID, rec.Date)
	current, ok := f.store[k]
	if !ok {
		return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
	}
	if current.Version != rec.Version {
		return attendance.AttendanceRecord{}, attendance.ErrVersionConflict
	}
	rec.Version++
	rec.UpdatedAt = time.Now().UTC()
	f.store[k] = rec
	return rec, nil
}

func (f *fakeAttendanceRepo) ListByDay(_ context.Context, dayStart, dayEnd time.Time) ([]attendance.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.AttendanceRecord
	for _, rec := range f.store {
		for _, p := range rec.Punches {
			if !p.Time.Before(dayStart) && !p.Time.After(dayEnd) {
				out = append(out, rec)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.AttendanceRecord
	for _, rec := range f.store {
		if rec.EmployeeID == employeeID && !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeScheduleService struct {
	resolved shift.ResolvedShift
	err      error
}

func (f *fakeScheduleService) Resolve(context.Context, string, time.Time) (shift.ResolvedShift, error) {
	return f.resolved, f.err
}

func (f *fakeScheduleService) CreateShift(context.Context, shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	panic("not used")
}
func (f *fakeScheduleService) ListShifts(context.Context) ([]shift.ShiftResponse, error) {
	panic("not used")
}
func (f *fakeScheduleService) DeleteShift(context.Context, string) error { panic("not used") }
func (f *fakeScheduleService) Assign(context.Context, shift.AssignShiftRequest) (shift.AssignmentResponse, error) {
	panic("not used")
}
func (f *fakeScheduleService) ApproveAssignment(context.Context, string) (shift.AssignmentResponse, error) {
	panic("not used")
}
func (f *fakeScheduleService) ListAssignments(context.Context, shift.AssignmentFilter) ([]shift.AssignmentResponse, int64, error) {
	panic("not used")
}
func (f *fakeScheduleService) DeleteAssignment(context.Context, string) error { panic("not used") }

type staticChecker bool

func (c staticChecker) IsOnLeave(context.Context, string, time.Time) (bool, error) {
	return bool(c), nil
}

func (c staticChecker) IsTerminated(context.Context, string, time.Time) (bool, error) {
	return bool(c), nil
}

func approvedAssignment() shift.ResolvedShift {
	return shift.ResolvedShift{
		Assignment: shift.ShiftAssignment{
			ID:         "asg-1",
			EmployeeID: "emp-1",
			ShiftID:    "shift-1",
			StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Status:     shift.AssignmentStatusApproved,
			RestDays:   []string{"saturday", "sunday"},
		},
		Shift: shift.Shift{ID: "shift-1", Name: "Day", StartTime: "09:00", EndTime: "17:00"},
	}
}

type serviceDeps struct {
	repo     *fakeAttendanceRepo
	schedule *fakeScheduleService
	onLeave  staticChecker
	gone     staticChecker
}

func newService(mod func(*serviceDeps)) (attendance.AttendanceService, *fakeAttendanceRepo) {
	deps := &serviceDeps{
		repo:     newFakeAttendanceRepo(),
		schedule: &fakeScheduleService{resolved: approvedAssignment()},
	}
	if mod != nil {
		mod(deps)
	}
	svc := NewAttendanceService(deps.repo, deps.schedule, deps.onLeave, deps.gone)
	return svc, deps.repo
}

func ts(s string) *string { return &s }

// ===== TESTS =====

func TestAttendanceService_ClockIn_CreatesRecord(t *testing.T) {
	svc, _ := newService(nil)

	// 2024-03-04 is a Monday.
	rec, err := svc.ClockIn(context.Background(), attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  ts("2024-03-04T09:00:00Z"),
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", rec.Date)
	require.Len(t, rec.Punches, 1)
	assert.Equal(t, "IN", rec.Punches[0].Type)
	assert.True(t, rec.HasMissedPunch, "single IN has no matching OUT")
}

func TestAttendanceService_ClockInThenOut(t *testing.T) {
	svc, _ := newService(nil)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  ts("2024-03-04T09:00:00Z"),
	})
	require.NoError(t, err)

	rec, err := svc.ClockOut(ctx, attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  ts("2024-03-04T17:00:00Z"),
	})

	require.NoError(t, err)
	assert.Equal(t, 480, rec.TotalWorkMinutes)
	assert.False(t, rec.HasMissedPunch)
}

func TestAttendanceService_ClockOut_WithoutClockIn(t *testing.T) {
	svc, _ := newService(nil)

	_, err := svc.ClockOut(context.Background(), attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  ts("2024-03-04T17:00:00Z"),
	})

	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestAttendanceService_ClockIn_Gates(t *testing.T) {
	tests := []struct {
		name    string
		mod     func(*serviceDeps)
		wantErr error
	}{
		{
			name:    "terminated employee",
			mod:     func(d *serviceDeps) { d.gone = staticChecker(true) },
			wantErr: attendance.ErrEmployeeTerminated,
		},
		{
			name:    "employee on leave",
			mod:     func(d *serviceDeps) { d.onLeave = staticChecker(true) },
			wantErr: attendance.ErrEmployeeOnLeave,
		},
		{
			name:    "no assignment",
			mod:     func(d *serviceDeps) { d.schedule.err = shift.ErrAssignmentNotFound },
			wantErr: shift.ErrAssignmentNotFound,
		},
		{
			name:    "pending assignment",
			mod:     func(d *serviceDeps) { d.schedule.err = shift.ErrAssignmentPending },
			wantErr: shift.ErrAssignmentPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(tt.mod)

			_, err := svc.ClockIn(context.Background(), attendance.ClockRequest{
				EmployeeID: "emp-1",
				Timestamp:  ts("2024-03-04T09:00:00Z"),
			})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAttendanceService_ClockIn_RestDay(t *testing.T) {
	svc, _ := newService(nil)

	// 2024-03-02 is a Saturday, a rest day of the assignment.
	_, err := svc.ClockIn(context.Background(), attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  ts("2024-03-02T09:00:00Z"),
	})

	assert.ErrorIs(t, err, attendance.ErrRestDay)
}

func TestAttendanceService_ClockIn_MalformedTimestamp(t *testing.T) {
	svc, _ := newService(nil)

	_, err := svc.ClockIn(context.Background(), attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  ts("yesterday at nine"),
	})

	assert.Error(t, err)
}

func TestAttendanceService_DoubleClockIn_ReopensWindow(t *testing.T) {
	svc, _ := newService(nil)
	ctx := context.Background()

	for _, stamp := range []string{"2024-03-04T08:00:00Z", "2024-03-04T09:00:00Z"} {
		_, err := svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "emp-1", Timestamp: ts(stamp)})
		require.NoError(t, err)
	}

	rec, err := svc.ClockOut(ctx, attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  ts("2024-03-04T17:00:00Z"),
	})

	require.NoError(t, err)
	// The second IN re-opened the window, so only 09:00-17:00 counts.
	assert.Equal(t, 480, rec.TotalWorkMinutes)
	assert.True(t, rec.HasMissedPunch)
}

func TestAttendanceService_ApplyCorrection(t *testing.T) {
	svc, _ := newService(nil)
	ctx := context.Background()

	created, err := svc.ClockIn(ctx, attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  ts("2024-03-04T09:30:00Z"),
	})
	require.NoError(t, err)
	_, err = svc.ClockOut(ctx, attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  ts("2024-03-04T17:00:00Z"),
	})
	require.NoError(t, err)

	rec, err := svc.ApplyCorrection(ctx, created.ID, attendance.CorrectionPatch{
		ClockIn: ts("2024-03-04T09:00:00Z"),
	})

	require.NoError(t, err)
	assert.Equal(t, 480, rec.TotalWorkMinutes)
	assert.Equal(t, "2024-03-04T09:00:00Z", rec.Punches[0].Time)
}

func TestAttendanceService_ApplyCorrection_InsertsMissingOut(t *testing.T) {
	svc, _ := newService(nil)
	ctx := context.Background()

	created, err := svc.ClockIn(ctx, attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  ts("2024-03-04T09:00:00Z"),
	})
	require.NoError(t, err)

	rec, err := svc.ApplyCorrection(ctx, created.ID, attendance.CorrectionPatch{
		ClockOut: ts("2024-03-04T17:00:00Z"),
	})

	require.NoError(t, err)
	assert.False(t, rec.HasMissedPunch)
	assert.Equal(t, 480, rec.TotalWorkMinutes)
}

func TestAttendanceService_FinalisedRecord_RejectsMutation(t *testing.T) {
	svc, repo := newService(nil)
	ctx := context.Background()

	created, err := svc.ClockIn(ctx, attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  ts("2024-03-04T09:00:00Z"),
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	stored.FinalisedForPayroll = true
	_, err = repo.Update(ctx, stored)
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  ts("2024-03-04T17:00:00Z"),
	})
	assert.ErrorIs(t, err, attendance.ErrRecordFinalised)

	_, err = svc.ApplyCorrection(ctx, created.ID, attendance.CorrectionPatch{
		ClockOut: ts("2024-03-04T17:00:00Z"),
	})
	assert.ErrorIs(t, err, attendance.ErrRecordFinalised)
}

func TestAttendanceService_ConcurrentClockOuts_DoNotLosePunches(t *testing.T) {
	svc, repo := newService(nil)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, attendance.ClockRequest{
		EmployeeID: "emp-1",
		Timestamp:  ts("2024-03-04T09:00:00Z"),
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(minute int) {
			defer wg.Done()
			_, err := svc.ClockOut(ctx, attendance.ClockRequest{
				EmployeeID: "emp-1",
				Timestamp:  ts(fmt.Sprintf("2024-03-04T17:%02d:00Z", minute)),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	rec, err := repo.GetByEmployeeAndDate(ctx, "emp-1", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, rec.Punches, 11, "every clock-out punch must survive")
}

func TestAttendanceService_GetRecord_NotFound(t *testing.T) {
	svc, _ := newService(nil)

	_, err := svc.GetRecord(context.Background(), "emp-1", time.Now().UTC())

	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}
