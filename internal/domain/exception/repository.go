package exception

import "context"

// ExceptionRepository persists time exceptions.
type ExceptionRepository interface {
	Create(ctx context.Context, exc TimeException) (TimeException, error)
	GetByID(ctx context.Context, id string) (TimeException, error)
	List(ctx context.Context, employeeID *string) ([]TimeException, error)
	ListByRecord(ctx context.Context, attendanceRecordID string) ([]TimeException, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}

// ExceptionService manages the lifecycle of time exceptions. The advisory
// effects of an exception are computed by the rules engine, not stored.
type ExceptionService interface {
	Create(ctx context.Context, req CreateExceptionRequest) (ExceptionResponse, error)
	Get(ctx context.Context, id string) (ExceptionResponse, error)
	List(ctx context.Context, employeeID *string) ([]ExceptionResponse, error)
	Approve(ctx context.Context, id string) (ExceptionResponse, error)
	Reject(ctx context.Context, id string) (ExceptionResponse, error)
	Delete(ctx context.Context, id string) error
}
