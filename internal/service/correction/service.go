package correction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/correction"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

type correctionServiceImpl struct {
	correctionRepo correction.CorrectionRepository
	attendanceSvc  attendance.AttendanceService
	tx             database.TxRunner
}

func NewCorrectionService(
	correctionRepo correction.CorrectionRepository,
	attendanceSvc attendance.AttendanceService,
	tx database.TxRunner,
) correction.CorrectionService {
	return &correctionServiceImpl{
		correctionRepo: correctionRepo,
		attendanceSvc:  attendanceSvc,
		tx:             tx,
	}
}

func (s *correctionServiceImpl) Create(ctx context.Context, req correction.CreateCorrectionRequest) (correction.CorrectionResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.CorrectionResponse{}, err
	}

	parse := func(v *string) *time.Time {
		if v == nil {
			return nil
		}
		t, _ := validator.IsValidDateTime(*v)
		t = t.UTC()
		return &t
	}

	// Caller-supplied status is ignored; every request starts submitted.
	entity := correction.CorrectionRequest{
		EmployeeID:         req.EmployeeID,
		AttendanceRecordID: req.AttendanceRecordID,
		RequestedClockIn:   parse(req.ClockIn),
		RequestedClockOut:  parse(req.ClockOut),
		Reason:             req.Reason,
		ManagerID:          req.ManagerID,
		Status:             correction.StatusSubmitted,
	}

	created, err := s.correctionRepo.Create(ctx, entity)
	if err != nil {
		return correction.CorrectionResponse{}, fmt.Errorf("failed to create correction request: %w", err)
	}
	return correction.ToResponse(created), nil
}

func (s *correctionServiceImpl) Get(ctx context.Context, id string) (correction.CorrectionResponse, error) {
	req, err := s.correctionRepo.GetByID(ctx, id)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	return correction.ToResponse(req), nil
}

func (s *correctionServiceImpl) List(ctx context.Context, employeeID *string) ([]correction.CorrectionResponse, error) {
	reqs, err := s.correctionRepo.List(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list correction requests: %w", err)
	}

	responses := make([]correction.CorrectionResponse, 0, len(reqs))
	for _, r := range reqs {
		responses = append(responses, correction.ToResponse(r))
	}
	return responses, nil
}

// transition runs the guarded state change as a compare-and-set: the FSM
// decides the next status from what we read, and the write only lands if the
// row still holds that status. A racing approver surfaces as StateConflict.
func (s *correctionServiceImpl) transition(ctx context.Context, id string, event correction.Event) (correction.CorrectionRequest, error) {
	req, err := s.correctionRepo.GetByID(ctx, id)
	if err != nil {
		return correction.CorrectionRequest{}, err
	}

	next, err := correction.Transition(req.Status, event)
	if err != nil {
		return correction.CorrectionRequest{}, err
	}

	if err := s.correctionRepo.UpdateStatus(ctx, id, req.Status, next); err != nil {
		if errors.Is(err, correction.ErrCorrectionNotFound) {
			return correction.CorrectionRequest{}, &correction.StateConflictError{
				Event:    event,
				Current:  req.Status,
				Expected: []correction.Status{req.Status},
			}
		}
		return correction.CorrectionRequest{}, fmt.Errorf("failed to update correction status: %w", err)
	}

	req.Status = next
	return req, nil
}

func (s *correctionServiceImpl) ApproveByManager(ctx context.Context, id string) (correction.CorrectionResponse, error) {
	req, err := s.transition(ctx, id, correction.EventManagerApprove)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	return correction.ToResponse(req), nil
}

// ApproveByHR finalizes the two-stage approval and applies the requested
// punches to the attendance record. Status flip and punch amendment commit or
// roll back together.
func (s *correctionServiceImpl) ApproveByHR(ctx context.Context, id string) (correction.CorrectionResponse, error) {
	var result correction.CorrectionRequest

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		req, err := s.transition(txCtx, id, correction.EventHRApprove)
		if err != nil {
			return err
		}

		patch := attendance.CorrectionPatch{}
		if req.RequestedClockIn != nil {
			v := req.RequestedClockIn.UTC().Format(time.RFC3339)
			patch.ClockIn = &v
		}
		if req.RequestedClockOut != nil {
			v := req.RequestedClockOut.UTC().Format(time.RFC3339)
			patch.ClockOut = &v
		}

		if _, err := s.attendanceSvc.ApplyCorrection(txCtx, req.AttendanceRecordID, patch); err != nil {
			return fmt.Errorf("failed to apply approved correction: %w", err)
		}

		result = req
		return nil
	})
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	return correction.ToResponse(result), nil
}

func (s *correctionServiceImpl) Reject(ctx context.Context, id string) (correction.CorrectionResponse, error) {
	req, err := s.transition(ctx, id, correction.EventReject)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	return correction.ToResponse(req), nil
}

func (s *correctionServiceImpl) Escalate(ctx context.Context, id string) (correction.CorrectionResponse, error) {
	req, err := s.transition(ctx, id, correction.EventEscalate)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	return correction.ToResponse(req), nil
}

func (s *correctionServiceImpl) Finalize(ctx context.Context, id string) (correction.FinalizeResult, error) {
	req, err := s.correctionRepo.GetByID(ctx, id)
	if err != nil {
		return correction.FinalizeResult{}, err
	}
	return correction.Finalize(req), nil
}
