package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type assignmentRepository struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) shift.AssignmentRepository {
	return &assignmentRepository{db: db}
}

// Create implements shift.AssignmentRepository.
func (r *assignmentRepository) Create(ctx context.Context, a shift.ShiftAssignment) (shift.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return shift.ShiftAssignment{}, fmt.Errorf("failed to generate assignment id: %w", err)
	}
	a.ID = id.String()

	query := `
		INSERT INTO shift_assignments (
			id, employee_id, shift_id, start_date, end_date, rest_days, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		a.ID, a.EmployeeID, a.ShiftID, a.StartDate, a.EndDate, a.RestDays, string(a.Status),
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return shift.ShiftAssignment{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}

	return a, nil
}

const assignmentColumns = `
	a.id, a.employee_id, a.shift_id, a.start_date, a.end_date, a.rest_days, a.status,
	a.created_at, a.updated_at, s.name
`

func scanAssignment(row pgx.Row) (shift.ShiftAssignment, error) {
	var a shift.ShiftAssignment
	var status string
	var shiftName *string
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.ShiftID, &a.StartDate, &a.EndDate, &a.RestDays, &status,
		&a.CreatedAt, &a.UpdatedAt, &shiftName,
	)
	if err != nil {
		return shift.ShiftAssignment{}, err
	}
	a.Status = shift.AssignmentStatus(status)
	a.ShiftName = shiftName
	return a, nil
}

// GetByID implements shift.AssignmentRepository.
func (r *assignmentRepository) GetByID(ctx context.Context, id string) (shift.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM shift_assignments a
		JOIN shifts s ON s.id = a.shift_id
		WHERE a.id = $1
	`

	a, err := scanAssignment(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ShiftAssignment{}, shift.ErrAssignmentNotFound
		}
		return shift.ShiftAssignment{}, fmt.Errorf("failed to get shift assignment: %w", err)
	}
	return a, nil
}

// ListCovering implements shift.AssignmentRepository. Returns every status;
// the resolver decides what wins.
func (r *assignmentRepository) ListCovering(ctx context.Context, employeeID string, dayStart, dayEnd time.Time) ([]shift.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM shift_assignments a
		JOIN shifts s ON s.id = a.shift_id
		WHERE a.employee_id = $1
		  AND a.start_date <= $2
		  AND (a.end_date IS NULL OR a.end_date >= $3)
		ORDER BY a.start_date
	`

	rows, err := q.Query(ctx, query, employeeID, dayEnd, dayStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list covering assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.ShiftAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// List implements shift.AssignmentRepository.
func (r *assignmentRepository) List(ctx context.Context, filter shift.AssignmentFilter) ([]shift.ShiftAssignment, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND a.employee_id = $%d", argPos)
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND a.status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM shift_assignments a` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shift assignments: %w", err)
	}

	query := `
		SELECT ` + assignmentColumns + `
		FROM shift_assignments a
		JOIN shifts s ON s.id = a.shift_id` + where + fmt.Sprintf(`
		ORDER BY a.start_date DESC
		LIMIT $%d OFFSET $%d
	`, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.ShiftAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, total, rows.Err()
}

// UpdateStatus implements shift.AssignmentRepository.
func (r *assignmentRepository) UpdateStatus(ctx context.Context, id string, status shift.AssignmentStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE shift_assignments SET status = $1, updated_at = NOW() WHERE id = $2
	`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrAssignmentNotFound
	}
	return nil
}

// Delete implements shift.AssignmentRepository.
func (r *assignmentRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shift_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrAssignmentNotFound
	}
	return nil
}

// ExpireEnded implements shift.AssignmentRepository.
func (r *assignmentRepository) ExpireEnded(ctx context.Context, asOf time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE shift_assignments
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND end_date IS NOT NULL AND end_date < $3
	`, string(shift.AssignmentStatusExpired), string(shift.AssignmentStatusApproved), asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to expire ended assignments: %w", err)
	}
	return tag.RowsAffected(), nil
}
