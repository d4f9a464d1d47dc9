package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to generate record id: %w", err)
	}
	record.ID = id.String()
	record.Version = 1

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, total_work_minutes, has_missed_punch,
			finalised_for_payroll, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.Date,
		record.TotalWorkMinutes,
		record.HasMissedPunch,
		record.FinalisedForPayroll,
		record.Version,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	if err := r.insertPunches(ctx, q, record.ID, record.Punches); err != nil {
		return attendance.AttendanceRecord{}, err
	}

	return r.getByID(ctx, q, record.ID)
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.AttendanceRecord, error) {
	return r.getByID(ctx, GetQuerier(ctx, r.db), id)
}

func (r *attendanceRepository) getByID(ctx context.Context, q database.Querier, id string) (attendance.AttendanceRecord, error) {
	query := `
		SELECT id, employee_id, date, total_work_minutes, has_missed_punch,
			   finalised_for_payroll, version, created_at, updated_at
		FROM attendance_records
		WHERE id = $1
	`

	var rec attendance.AttendanceRecord
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.TotalWorkMinutes, &rec.HasMissedPunch,
		&rec.FinalisedForPayroll, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if err := r.loadPunches(ctx, q, &rec); err != nil {
		return attendance.AttendanceRecord{}, err
	}
	if err := r.loadExceptionIDs(ctx, q, &rec); err != nil {
		return attendance.AttendanceRecord{}, err
	}
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
		LIMIT 1
	`

	var id string
	err := q.QueryRow(ctx, query, employeeID, date).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance record by employee and date: %w", err)
	}

	return r.getByID(ctx, q, id)
}

// Update implements attendance.AttendanceRepository. The write is guarded by
// the version column: no row matches when another writer got there first.
func (r *attendanceRepository) Update(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET total_work_minutes = $1,
			has_missed_punch = $2,
			finalised_for_payroll = $3,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $4 AND version = $5
	`

	tag, err := q.Exec(ctx, query,
		record.TotalWorkMinutes,
		record.HasMissedPunch,
		record.FinalisedForPayroll,
		record.ID,
		record.Version,
	)
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing record from a stale version.
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM attendance_records WHERE id = $1)`, record.ID).Scan(&exists); err != nil {
			return attendance.AttendanceRecord{}, fmt.Errorf("failed to update attendance record: %w", err)
		}
		if !exists {
			return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.AttendanceRecord{}, attendance.ErrVersionConflict
	}

	// Punches are replaced wholesale; the record owns them.
	if _, err := q.Exec(ctx, `DELETE FROM punches WHERE record_id = $1`, record.ID); err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to replace punches: %w", err)
	}
	if err := r.insertPunches(ctx, q, record.ID, record.Punches); err != nil {
		return attendance.AttendanceRecord{}, err
	}

	return r.getByID(ctx, q, record.ID)
}

// ListByDay implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDay(ctx context.Context, dayStart, dayEnd time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT r.id
		FROM attendance_records r
		JOIN punches p ON p.record_id = r.id
		WHERE p.punch_time BETWEEN $1 AND $2
		ORDER BY r.id
	`

	rows, err := q.Query(ctx, query, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records by day: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan record id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	records := make([]attendance.AttendanceRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := r.getByID(ctx, q, id)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id
		FROM attendance_records
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records by range: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan record id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	records := make([]attendance.AttendanceRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := r.getByID(ctx, q, id)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *attendanceRepository) insertPunches(ctx context.Context, q database.Querier, recordID string, punches []attendance.Punch) error {
	for _, p := range punches {
		id := p.ID
		if id == "" {
			newID, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("failed to generate punch id: %w", err)
			}
			id = newID.String()
		}
		_, err := q.Exec(ctx, `
			INSERT INTO punches (id, record_id, punch_type, punch_time)
			VALUES ($1, $2, $3, $4)
		`, id, recordID, string(p.Type), p.Time)
		if err != nil {
			return fmt.Errorf("failed to insert punch: %w", err)
		}
	}
	return nil
}

func (r *attendanceRepository) loadPunches(ctx context.Context, q database.Querier, rec *attendance.AttendanceRecord) error {
	rows, err := q.Query(ctx, `
		SELECT id, record_id, punch_type, punch_time
		FROM punches
		WHERE record_id = $1
		ORDER BY punch_time
	`, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to load punches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p attendance.Punch
		var punchType string
		if err := rows.Scan(&p.ID, &p.RecordID, &punchType, &p.Time); err != nil {
			return fmt.Errorf("failed to scan punch: %w", err)
		}
		p.Type = attendance.PunchType(punchType)
		rec.Punches = append(rec.Punches, p)
	}
	return rows.Err()
}

func (r *attendanceRepository) loadExceptionIDs(ctx context.Context, q database.Querier, rec *attendance.AttendanceRecord) error {
	rows, err := q.Query(ctx, `
		SELECT id FROM time_exceptions WHERE attendance_record_id = $1 ORDER BY created_at
	`, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to load exception ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan exception id: %w", err)
		}
		rec.ExceptionIDs = append(rec.ExceptionIDs, id)
	}
	return rows.Err()
}
