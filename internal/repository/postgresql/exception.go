package postgresql

import (
	"context"
	"fmt"

	"github.com/chronohr/attendance-backend-go/internal/domain/exception"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type exceptionRepository struct {
	db *database.DB
}

func NewExceptionRepository(db *database.DB) exception.ExceptionRepository {
	return &exceptionRepository{db: db}
}

// Create implements exception.ExceptionRepository.
func (r *exceptionRepository) Create(ctx context.Context, exc exception.TimeException) (exception.TimeException, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return exception.TimeException{}, fmt.Errorf("failed to generate exception id: %w", err)
	}
	exc.ID = id.String()

	query := `
		INSERT INTO time_exceptions (
			id, employee_id, attendance_record_id, exception_type, reason, status
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		exc.ID, exc.EmployeeID, exc.AttendanceRecordID, string(exc.Type), exc.Reason, string(exc.Status),
	).Scan(&exc.CreatedAt, &exc.UpdatedAt)
	if err != nil {
		return exception.TimeException{}, fmt.Errorf("failed to create time exception: %w", err)
	}

	return exc, nil
}

// GetByID implements exception.ExceptionRepository.
func (r *exceptionRepository) GetByID(ctx context.Context, id string) (exception.TimeException, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, attendance_record_id, exception_type, reason, status,
			   created_at, updated_at
		FROM time_exceptions
		WHERE id = $1
	`

	var exc exception.TimeException
	var excType, status string
	err := q.QueryRow(ctx, query, id).Scan(
		&exc.ID, &exc.EmployeeID, &exc.AttendanceRecordID, &excType, &exc.Reason, &status,
		&exc.CreatedAt, &exc.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return exception.TimeException{}, exception.ErrExceptionNotFound
		}
		return exception.TimeException{}, fmt.Errorf("failed to get time exception: %w", err)
	}
	exc.Type = exception.Type(excType)
	exc.Status = exception.Status(status)

	return exc, nil
}

// List implements exception.ExceptionRepository.
func (r *exceptionRepository) List(ctx context.Context, employeeID *string) ([]exception.TimeException, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, attendance_record_id, exception_type, reason, status,
			   created_at, updated_at
		FROM time_exceptions
	`
	args := []interface{}{}
	if employeeID != nil && *employeeID != "" {
		query += ` WHERE employee_id = $1`
		args = append(args, *employeeID)
	}
	query += ` ORDER BY created_at DESC`

	return r.queryExceptions(ctx, q, query, args...)
}

// ListByRecord implements exception.ExceptionRepository.
func (r *exceptionRepository) ListByRecord(ctx context.Context, attendanceRecordID string) ([]exception.TimeException, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, attendance_record_id, exception_type, reason, status,
			   created_at, updated_at
		FROM time_exceptions
		WHERE attendance_record_id = $1
		ORDER BY created_at
	`

	return r.queryExceptions(ctx, q, query, attendanceRecordID)
}

func (r *exceptionRepository) queryExceptions(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]exception.TimeException, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time exceptions: %w", err)
	}
	defer rows.Close()

	var excs []exception.TimeException
	for rows.Next() {
		var exc exception.TimeException
		var excType, status string
		if err := rows.Scan(
			&exc.ID, &exc.EmployeeID, &exc.AttendanceRecordID, &excType, &exc.Reason, &status,
			&exc.CreatedAt, &exc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan time exception: %w", err)
		}
		exc.Type = exception.Type(excType)
		exc.Status = exception.Status(status)
		excs = append(excs, exc)
	}
	return excs, rows.Err()
}

// UpdateStatus implements exception.ExceptionRepository.
func (r *exceptionRepository) UpdateStatus(ctx context.Context, id string, status exception.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE time_exceptions SET status = $1, updated_at = NOW() WHERE id = $2
	`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update exception status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return exception.ErrExceptionNotFound
	}
	return nil
}

// Delete implements exception.ExceptionRepository.
func (r *exceptionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_exceptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time exception: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return exception.ErrExceptionNotFound
	}
	return nil
}
