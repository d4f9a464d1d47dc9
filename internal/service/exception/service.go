package exception

import (
	"context"
	"fmt"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/exception"
)

type exceptionServiceImpl struct {
	exceptionRepo  exception.ExceptionRepository
	attendanceRepo attendance.AttendanceRepository
}

func NewExceptionService(
	exceptionRepo exception.ExceptionRepository,
	attendanceRepo attendance.AttendanceRepository,
) exception.ExceptionService {
	return &exceptionServiceImpl{
		exceptionRepo:  exceptionRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (s *exceptionServiceImpl) Create(ctx context.Context, req exception.CreateExceptionRequest) (exception.ExceptionResponse, error) {
	if err := req.Validate(); err != nil {
		return exception.ExceptionResponse{}, err
	}

	// The referenced record must exist; the exception back-references it but
	// never owns it.
	if _, err := s.attendanceRepo.GetByID(ctx, req.AttendanceRecordID); err != nil {
		return exception.ExceptionResponse{}, err
	}

	entity := exception.TimeException{
		EmployeeID:         req.EmployeeID,
		AttendanceRecordID: req.AttendanceRecordID,
		Type:               exception.Type(req.Type),
		Reason:             req.Reason,
		Status:             exception.StatusPending,
	}

	created, err := s.exceptionRepo.Create(ctx, entity)
	if err != nil {
		return exception.ExceptionResponse{}, fmt.Errorf("failed to create time exception: %w", err)
	}
	return exception.ToResponse(created), nil
}

func (s *exceptionServiceImpl) Get(ctx context.Context, id string) (exception.ExceptionResponse, error) {
	exc, err := s.exceptionRepo.GetByID(ctx, id)
	if err != nil {
		return exception.ExceptionResponse{}, err
	}
	return exception.ToResponse(exc), nil
}

func (s *exceptionServiceImpl) List(ctx context.Context, employeeID *string) ([]exception.ExceptionResponse, error) {
	excs, err := s.exceptionRepo.List(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time exceptions: %w", err)
	}

	responses := make([]exception.ExceptionResponse, 0, len(excs))
	for _, e := range excs {
		responses = append(responses, exception.ToResponse(e))
	}
	return responses, nil
}

func (s *exceptionServiceImpl) Approve(ctx context.Context, id string) (exception.ExceptionResponse, error) {
	return s.setStatus(ctx, id, exception.StatusApproved)
}

func (s *exceptionServiceImpl) Reject(ctx context.Context, id string) (exception.ExceptionResponse, error) {
	return s.setStatus(ctx, id, exception.StatusRejected)
}

func (s *exceptionServiceImpl) setStatus(ctx context.Context, id string, status exception.Status) (exception.ExceptionResponse, error) {
	exc, err := s.exceptionRepo.GetByID(ctx, id)
	if err != nil {
		return exception.ExceptionResponse{}, err
	}
	if exc.Status != exception.StatusPending {
		return exception.ExceptionResponse{}, exception.ErrExceptionAlreadyProcessed
	}

	if err := s.exceptionRepo.UpdateStatus(ctx, id, status); err != nil {
		return exception.ExceptionResponse{}, fmt.Errorf("failed to update exception status: %w", err)
	}

	exc.Status = status
	return exception.ToResponse(exc), nil
}

func (s *exceptionServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.exceptionRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.exceptionRepo.Delete(ctx, id)
}
