package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
)

// leaveChecker answers the one question the punch ledger asks of the leave
// system. Leave rows themselves are owned and written elsewhere.
type leaveChecker struct {
	db *database.DB
}

func NewLeaveChecker(db *database.DB) leave.Checker {
	return &leaveChecker{db: db}
}

// IsOnLeave implements leave.Checker.
func (r *leaveChecker) IsOnLeave(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status = 'approved'
			  AND start_date <= $2
			  AND end_date >= $2
		)
	`

	var onLeave bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&onLeave); err != nil {
		return false, fmt.Errorf("failed to check leave status: %w", err)
	}
	return onLeave, nil
}
