package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/offboarding"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
)

// offboardingChecker answers the termination question against the employee
// roster, which the offboarding workflow maintains.
type offboardingChecker struct {
	db *database.DB
}

func NewOffboardingChecker(db *database.DB) offboarding.Checker {
	return &offboardingChecker{db: db}
}

// IsTerminated implements offboarding.Checker.
func (r *offboardingChecker) IsTerminated(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1
			FROM employees
			WHERE id = $1
			  AND terminated_at IS NOT NULL
			  AND terminated_at <= $2
		)
	`

	var terminated bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&terminated); err != nil {
		return false, fmt.Errorf("failed to check termination status: %w", err)
	}
	return terminated, nil
}
