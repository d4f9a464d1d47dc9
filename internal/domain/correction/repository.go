package correction

import "context"

// CorrectionRepository persists correction requests.
type CorrectionRepository interface {
	Create(ctx context.Context, req CorrectionRequest) (CorrectionRequest, error)
	GetByID(ctx context.Context, id string) (CorrectionRequest, error)
	List(ctx context.Context, employeeID *string) ([]CorrectionRequest, error)

	// UpdateStatus is a compare-and-set: the row is written only if its
	// stored status still equals expected, so two approvers cannot race
	// past the same guard. Returns ErrCorrectionNotFound when no row
	// matched (missing id or stale expected status).
	UpdateStatus(ctx context.Context, id string, expected, next Status) error
}

// CorrectionService drives the two-stage approval workflow.
type CorrectionService interface {
	Create(ctx context.Context, req CreateCorrectionRequest) (CorrectionResponse, error)
	Get(ctx context.Context, id string) (CorrectionResponse, error)
	List(ctx context.Context, employeeID *string) ([]CorrectionResponse, error)

	// ApproveByManager: submitted -> in_review.
	ApproveByManager(ctx context.Context, id string) (CorrectionResponse, error)

	// ApproveByHR: in_review -> approved. On success the requested punches
	// are applied to the attendance record in the same transaction.
	ApproveByHR(ctx context.Context, id string) (CorrectionResponse, error)

	// Reject: any non-approved status -> rejected.
	Reject(ctx context.Context, id string) (CorrectionResponse, error)

	// Escalate: unguarded; flags the request for manual handling.
	Escalate(ctx context.Context, id string) (CorrectionResponse, error)

	// Finalize computes the advisory recommendation for the request.
	Finalize(ctx context.Context, id string) (FinalizeResult, error)
}
