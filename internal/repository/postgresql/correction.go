package postgresql

import (
	"context"
	"fmt"

	"github.com/chronohr/attendance-backend-go/internal/domain/correction"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type correctionRepository struct {
	db *database.DB
}

func NewCorrectionRepository(db *database.DB) correction.CorrectionRepository {
	return &correctionRepository{db: db}
}

// Create implements correction.CorrectionRepository.
func (r *correctionRepository) Create(ctx context.Context, req correction.CorrectionRequest) (correction.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return correction.CorrectionRequest{}, fmt.Errorf("failed to generate correction id: %w", err)
	}
	req.ID = id.String()

	query := `
		INSERT INTO correction_requests (
			id, employee_id, attendance_record_id, requested_clock_in,
			requested_clock_out, reason, manager_id, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.AttendanceRecordID, req.RequestedClockIn,
		req.RequestedClockOut, req.Reason, req.ManagerID, string(req.Status),
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return correction.CorrectionRequest{}, fmt.Errorf("failed to create correction request: %w", err)
	}

	return req, nil
}

// GetByID implements correction.CorrectionRepository.
func (r *correctionRepository) GetByID(ctx context.Context, id string) (correction.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, attendance_record_id, requested_clock_in,
			   requested_clock_out, reason, manager_id, status, created_at, updated_at
		FROM correction_requests
		WHERE id = $1
	`

	var req correction.CorrectionRequest
	var status string
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.AttendanceRecordID, &req.RequestedClockIn,
		&req.RequestedClockOut, &req.Reason, &req.ManagerID, &status, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return correction.CorrectionRequest{}, correction.ErrCorrectionNotFound
		}
		return correction.CorrectionRequest{}, fmt.Errorf("failed to get correction request: %w", err)
	}
	req.Status = correction.Status(status)

	return req, nil
}

// List implements correction.CorrectionRepository.
func (r *correctionRepository) List(ctx context.Context, employeeID *string) ([]correction.CorrectionRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, attendance_record_id, requested_clock_in,
			   requested_clock_out, reason, manager_id, status, created_at, updated_at
		FROM correction_requests
	`
	args := []interface{}{}
	if employeeID != nil && *employeeID != "" {
		query += ` WHERE employee_id = $1`
		args = append(args, *employeeID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list correction requests: %w", err)
	}
	defer rows.Close()

	var reqs []correction.CorrectionRequest
	for rows.Next() {
		var req correction.CorrectionRequest
		var status string
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.AttendanceRecordID, &req.RequestedClockIn,
			&req.RequestedClockOut, &req.Reason, &req.ManagerID, &status, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan correction request: %w", err)
		}
		req.Status = correction.Status(status)
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// UpdateStatus implements correction.CorrectionRepository as a compare-and-set:
// the row is written only while its status still equals expected.
func (r *correctionRepository) UpdateStatus(ctx context.Context, id string, expected, next correction.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE correction_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, string(next), id, string(expected))
	if err != nil {
		return fmt.Errorf("failed to update correction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return correction.ErrCorrectionNotFound
	}
	return nil
}
