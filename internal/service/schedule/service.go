package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
)

type scheduleServiceImpl struct {
	shiftRepo      shift.ShiftRepository
	assignmentRepo shift.AssignmentRepository
}

func NewScheduleService(
	shiftRepo shift.ShiftRepository,
	assignmentRepo shift.AssignmentRepository,
) shift.ScheduleService {
	return &scheduleServiceImpl{
		shiftRepo:      shiftRepo,
		assignmentRepo: assignmentRepo,
	}
}

// Resolve finds the assignment governing the employee on date, then loads its
// shift definition. Pure read; rest-day rejection is the caller's decision.
func (s *scheduleServiceImpl) Resolve(ctx context.Context, employeeID string, date time.Time) (shift.ResolvedShift, error) {
	dayStart, dayEnd := attendance.DayBounds(date)

	candidates, err := s.assignmentRepo.ListCovering(ctx, employeeID, dayStart, dayEnd)
	if err != nil {
		return shift.ResolvedShift{}, fmt.Errorf("failed to list shift assignments: %w", err)
	}

	assignment, err := shift.Resolve(candidates, date)
	if err != nil {
		return shift.ResolvedShift{}, err
	}

	def, err := s.shiftRepo.GetByID(ctx, assignment.ShiftID)
	if err != nil {
		return shift.ResolvedShift{}, fmt.Errorf("failed to load shift %s: %w", assignment.ShiftID, err)
	}

	return shift.ResolvedShift{Assignment: assignment, Shift: def}, nil
}

// ==================== SHIFT DEFINITIONS ====================

func (s *scheduleServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	entity := shift.Shift{
		Name:                     req.Name,
		StartTime:                req.StartTime,
		EndTime:                  req.EndTime,
		Type:                     shift.ShiftType(req.Type),
		GracePeriodMinutes:       req.GracePeriodMinutes,
		OvertimeRequiresApproval: req.OvertimeRequiresApproval,
	}

	created, err := s.shiftRepo.Create(ctx, entity)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return shift.ToShiftResponse(created), nil
}

func (s *scheduleServiceImpl) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.ToShiftResponse(sh))
	}
	return responses, nil
}

func (s *scheduleServiceImpl) DeleteShift(ctx context.Context, id string) error {
	if _, err := s.shiftRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.shiftRepo.Delete(ctx, id)
}

// ==================== ASSIGNMENTS ====================

func (s *scheduleServiceImpl) Assign(ctx context.Context, req shift.AssignShiftRequest) (shift.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.AssignmentResponse{}, err
	}

	// The shift must exist before anyone is bound to it.
	if _, err := s.shiftRepo.GetByID(ctx, req.ShiftID); err != nil {
		return shift.AssignmentResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		end, _ := time.Parse("2006-01-02", *req.EndDate)
		endDate = &end
	}

	entity := shift.ShiftAssignment{
		EmployeeID: req.EmployeeID,
		ShiftID:    req.ShiftID,
		StartDate:  startDate,
		EndDate:    endDate,
		RestDays:   req.RestDays,
		Status:     shift.AssignmentStatusPending,
	}

	created, err := s.assignmentRepo.Create(ctx, entity)
	if err != nil {
		return shift.AssignmentResponse{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}

	return shift.ToAssignmentResponse(created), nil
}

func (s *scheduleServiceImpl) ApproveAssignment(ctx context.Context, id string) (shift.AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}

	if assignment.Status == shift.AssignmentStatusApproved {
		return shift.AssignmentResponse{}, shift.ErrAssignmentAlreadyApproved
	}

	if err := s.assignmentRepo.UpdateStatus(ctx, id, shift.AssignmentStatusApproved); err != nil {
		return shift.AssignmentResponse{}, fmt.Errorf("failed to approve assignment: %w", err)
	}

	approved, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}
	return shift.ToAssignmentResponse(approved), nil
}

func (s *scheduleServiceImpl) ListAssignments(ctx context.Context, filter shift.AssignmentFilter) ([]shift.AssignmentResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	assignments, total, err := s.assignmentRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}

	responses := make([]shift.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, shift.ToAssignmentResponse(a))
	}
	return responses, total, nil
}

func (s *scheduleServiceImpl) DeleteAssignment(ctx context.Context, id string) error {
	if _, err := s.assignmentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.assignmentRepo.Delete(ctx, id)
}
