package schedule

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShiftRepo struct {
	shifts map[string]shift.Shift
	nextID int
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[string]shift.Shift)}
}

func (f *fakeShiftRepo) Create(_ context.Context, s shift.Shift) (shift.Shift, error) {
	f.nextID++
	s.ID = fmt.Sprintf("shift-%d", f.nextID)
	s.CreatedAt = time.Now().UTC()
	s.UpdatedAt = s.CreatedAt
	f.shifts[s.ID] = s
	return s, nil
}

func (f *fakeShiftRepo) GetByID(_ context.Context, id string) (shift.Shift, error) {
	s, ok := f.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (f *fakeShiftRepo) List(_ context.Context) ([]shift.Shift, error) {
	out := make([]shift.Shift, 0, len(f.shifts))
	for _, s := range f.shifts {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeShiftRepo) Update(_ context.Context, s shift.Shift) error {
	if _, ok := f.shifts[s.ID]; !ok {
		return shift.ErrShiftNotFound
	}
	f.shifts[s.ID] = s
	return nil
}

func (f *fakeShiftRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.shifts[id]; !ok {
		return shift.ErrShiftNotFound
	}
	delete(f.shifts, id)
	return nil
}

type fakeAssignmentRepo struct {
	assignments map[string]shift.ShiftAssignment
	nextID      int
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[string]shift.ShiftAssignment)}
}

func (f *fakeAssignmentRepo) Create(_ context.Context, a shift.ShiftAssignment) (shift.ShiftAssignment, error) {
	f.nextID++
	a.ID = fmt.Sprintf("assignment-%d", f.nextID)
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	f.assignments[a.ID] = a
	return a, nil
}

func (f *fakeAssignmentRepo) GetByID(_ context.Context, id string) (shift.ShiftAssignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return shift.ShiftAssignment{}, shift.ErrAssignmentNotFound
	}
	return a, nil
}

func (f *fakeAssignmentRepo) ListCovering(_ context.Context, employeeID string, dayStart, dayEnd time.Time) ([]shift.ShiftAssignment, error) {
	var out []shift.ShiftAssignment
	for _, a := range f.assignments {
		if a.EmployeeID == employeeID && a.Covers(dayStart, dayEnd) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) List(_ context.Context, filter shift.AssignmentFilter) ([]shift.ShiftAssignment, int64, error) {
	var out []shift.ShiftAssignment
	for _, a := range f.assignments {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(a.Status) != *filter.Status {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAssignmentRepo) UpdateStatus(_ context.Context, id string, status shift.AssignmentStatus) error {
	a, ok := f.assignments[id]
	if !ok {
		return shift.ErrAssignmentNotFound
	}
	a.Status = status
	f.assignments[id] = a
	return nil
}

func (f *fakeAssignmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.assignments[id]; !ok {
		return shift.ErrAssignmentNotFound
	}
	delete(f.assignments, id)
	return nil
}

func (f *fakeAssignmentRepo) ExpireEnded(_ context.Context, asOf time.Time) (int64, error) {
	var n int64
	for id, a := range f.assignments {
		if a.Status == shift.AssignmentStatusApproved && a.EndDate != nil && a.EndDate.Before(asOf) {
			a.Status = shift.AssignmentStatusExpired
			f.assignments[id] = a
			n++
		}
	}
	return n, nil
}

func setupScheduleService(t *testing.T) (shift.ScheduleService, *fakeShiftRepo, *fakeAssignmentRepo) {
	t.Helper()
	shiftRepo := newFakeShiftRepo()
	assignmentRepo := newFakeAssignmentRepo()
	return NewScheduleService(shiftRepo, assignmentRepo), shiftRepo, assignmentRepo
}

func createMorningShift(t *testing.T, svc shift.ScheduleService) shift.ShiftResponse {
	t.Helper()
	created, err := svc.CreateShift(context.Background(), shift.CreateShiftRequest{
		Name:               "Morning",
		StartTime:          "09:00",
		EndTime:            "17:00",
		Type:               "normal",
		GracePeriodMinutes: 15,
	})
	require.NoError(t, err)
	return created
}

func TestCreateShift(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, _, _ := setupScheduleService(t)

		created := createMorningShift(t, svc)

		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Morning", created.Name)
		assert.Equal(t, "09:00", created.StartTime)
		assert.Equal(t, 15, created.GracePeriodMinutes)
	})

	t.Run("RejectsBadClockTime", func(t *testing.T) {
		svc, _, _ := setupScheduleService(t)

		_, err := svc.CreateShift(context.Background(), shift.CreateShiftRequest{
			Name:      "Broken",
			StartTime: "25:00",
			EndTime:   "17:00",
			Type:      "normal",
		})
		assert.Error(t, err)
	})
}

func TestAssign(t *testing.T) {
	t.Run("StartsPending", func(t *testing.T) {
		svc, _, _ := setupScheduleService(t)
		sh := createMorningShift(t, svc)

		created, err := svc.Assign(context.Background(), shift.AssignShiftRequest{
			EmployeeID: "emp-1",
			ShiftID:    sh.ID,
			StartDate:  "2024-03-01",
		})
		require.NoError(t, err)

		assert.Equal(t, string(shift.AssignmentStatusPending), created.Status)
	})

	t.Run("RejectsUnknownShift", func(t *testing.T) {
		svc, _, _ := setupScheduleService(t)

		_, err := svc.Assign(context.Background(), shift.AssignShiftRequest{
			EmployeeID: "emp-1",
			ShiftID:    "missing",
			StartDate:  "2024-03-01",
		})
		assert.ErrorIs(t, err, shift.ErrShiftNotFound)
	})
}

func TestApproveAssignment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, _, _ := setupScheduleService(t)
		sh := createMorningShift(t, svc)

		created, err := svc.Assign(context.Background(), shift.AssignShiftRequest{
			EmployeeID: "emp-1",
			ShiftID:    sh.ID,
			StartDate:  "2024-03-01",
		})
		require.NoError(t, err)

		approved, err := svc.ApproveAssignment(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, string(shift.AssignmentStatusApproved), approved.Status)
	})

	t.Run("RejectsSecondApproval", func(t *testing.T) {
		svc, _, _ := setupScheduleService(t)
		sh := createMorningShift(t, svc)

		created, err := svc.Assign(context.Background(), shift.AssignShiftRequest{
			EmployeeID: "emp-1",
			ShiftID:    sh.ID,
			StartDate:  "2024-03-01",
		})
		require.NoError(t, err)

		_, err = svc.ApproveAssignment(context.Background(), created.ID)
		require.NoError(t, err)

		_, err = svc.ApproveAssignment(context.Background(), created.ID)
		assert.ErrorIs(t, err, shift.ErrAssignmentAlreadyApproved)
	})
}

func TestResolve(t *testing.T) {
	assignOn := func(t *testing.T, svc shift.ScheduleService, shiftID, startDate string) shift.AssignmentResponse {
		t.Helper()
		created, err := svc.Assign(context.Background(), shift.AssignShiftRequest{
			EmployeeID: "emp-1",
			ShiftID:    shiftID,
			StartDate:  startDate,
		})
		require.NoError(t, err)
		return created
	}

	t.Run("ReturnsGoverningShift", func(t *testing.T) {
		svc, _, _ := setupScheduleService(t)
		sh := createMorningShift(t, svc)

		created := assignOn(t, svc, sh.ID, "2024-03-01")
		_, err := svc.ApproveAssignment(context.Background(), created.ID)
		require.NoError(t, err)

		resolved, err := svc.Resolve(context.Background(), "emp-1", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, sh.ID, resolved.Shift.ID)
		assert.Equal(t, created.ID, resolved.Assignment.ID)
	})

	t.Run("LatestStartDateWinsWhenOverlapping", func(t *testing.T) {
		svc, _, _ := setupScheduleService(t)
		morning := createMorningShift(t, svc)
		evening, err := svc.CreateShift(context.Background(), shift.CreateShiftRequest{
			Name:      "Evening",
			StartTime: "14:00",
			EndTime:   "22:00",
			Type:      "normal",
		})
		require.NoError(t, err)

		older := assignOn(t, svc, morning.ID, "2024-01-01")
		newer := assignOn(t, svc, evening.ID, "2024-03-01")
		_, err = svc.ApproveAssignment(context.Background(), older.ID)
		require.NoError(t, err)
		_, err = svc.ApproveAssignment(context.Background(), newer.ID)
		require.NoError(t, err)

		resolved, err := svc.Resolve(context.Background(), "emp-1", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, evening.ID, resolved.Shift.ID)
	})

	t.Run("PendingOnlyIsDistinctFromMissing", func(t *testing.T) {
		svc, _, _ := setupScheduleService(t)
		sh := createMorningShift(t, svc)
		assignOn(t, svc, sh.ID, "2024-03-01")

		_, err := svc.Resolve(context.Background(), "emp-1", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, err, shift.ErrAssignmentPending)

		_, err = svc.Resolve(context.Background(), "emp-2", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, err, shift.ErrAssignmentNotFound)
	})

	t.Run("EndedAssignmentDoesNotGovern", func(t *testing.T) {
		svc, _, assignmentRepo := setupScheduleService(t)
		sh := createMorningShift(t, svc)

		end := "2024-02-29"
		created, err := svc.Assign(context.Background(), shift.AssignShiftRequest{
			EmployeeID: "emp-1",
			ShiftID:    sh.ID,
			StartDate:  "2024-01-01",
			EndDate:    &end,
		})
		require.NoError(t, err)
		_, err = svc.ApproveAssignment(context.Background(), created.ID)
		require.NoError(t, err)

		_, err = svc.Resolve(context.Background(), "emp-1", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, err, shift.ErrAssignmentNotFound)

		n, err := assignmentRepo.ExpireEnded(context.Background(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestListAssignments(t *testing.T) {
	t.Run("FiltersByStatus", func(t *testing.T) {
		svc, _, _ := setupScheduleService(t)
		sh := createMorningShift(t, svc)

		first, err := svc.Assign(context.Background(), shift.AssignShiftRequest{
			EmployeeID: "emp-1",
			ShiftID:    sh.ID,
			StartDate:  "2024-03-01",
		})
		require.NoError(t, err)
		_, err = svc.Assign(context.Background(), shift.AssignShiftRequest{
			EmployeeID: "emp-2",
			ShiftID:    sh.ID,
			StartDate:  "2024-03-01",
		})
		require.NoError(t, err)

		_, err = svc.ApproveAssignment(context.Background(), first.ID)
		require.NoError(t, err)

		status := string(shift.AssignmentStatusApproved)
		list, total, err := svc.ListAssignments(context.Background(), shift.AssignmentFilter{Status: &status})
		require.NoError(t, err)

		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, first.ID, list[0].ID)
	})

	t.Run("RejectsUnknownStatus", func(t *testing.T) {
		svc, _, _ := setupScheduleService(t)

		status := "archived"
		_, _, err := svc.ListAssignments(context.Background(), shift.AssignmentFilter{Status: &status})
		assert.Error(t, err)
	})
}
