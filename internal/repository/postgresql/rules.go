package postgresql

import (
	"context"
	"fmt"

	"github.com/chronohr/attendance-backend-go/internal/domain/rules"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ==================== LATENESS RULES ====================

type latenessRuleRepository struct {
	db *database.DB
}

func NewLatenessRuleRepository(db *database.DB) rules.LatenessRuleRepository {
	return &latenessRuleRepository{db: db}
}

// Create implements rules.LatenessRuleRepository.
func (r *latenessRuleRepository) Create(ctx context.Context, rule rules.LatenessRule) (rules.LatenessRule, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return rules.LatenessRule{}, fmt.Errorf("failed to generate rule id: %w", err)
	}
	rule.ID = id.String()

	query := `
		INSERT INTO lateness_rules (id, name, grace_period_minutes, deduction_for_each_minute)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		rule.ID, rule.Name, rule.GracePeriodMinutes, rule.DeductionForEachMinute,
	).Scan(&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return rules.LatenessRule{}, fmt.Errorf("failed to create lateness rule: %w", err)
	}

	return rule, nil
}

// GetByID implements rules.LatenessRuleRepository.
func (r *latenessRuleRepository) GetByID(ctx context.Context, id string) (rules.LatenessRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, grace_period_minutes, deduction_for_each_minute, created_at, updated_at
		FROM lateness_rules
		WHERE id = $1
	`

	var rule rules.LatenessRule
	err := q.QueryRow(ctx, query, id).Scan(
		&rule.ID, &rule.Name, &rule.GracePeriodMinutes, &rule.DeductionForEachMinute,
		&rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return rules.LatenessRule{}, rules.ErrLatenessRuleNotFound
		}
		return rules.LatenessRule{}, fmt.Errorf("failed to get lateness rule: %w", err)
	}
	return rule, nil
}

// GetDefault implements rules.LatenessRuleRepository: the oldest configured
// rule is the one applied when no rule is named.
func (r *latenessRuleRepository) GetDefault(ctx context.Context) (rules.LatenessRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, grace_period_minutes, deduction_for_each_minute, created_at, updated_at
		FROM lateness_rules
		ORDER BY created_at
		LIMIT 1
	`

	var rule rules.LatenessRule
	err := q.QueryRow(ctx, query).Scan(
		&rule.ID, &rule.Name, &rule.GracePeriodMinutes, &rule.DeductionForEachMinute,
		&rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return rules.LatenessRule{}, rules.ErrLatenessRuleNotFound
		}
		return rules.LatenessRule{}, fmt.Errorf("failed to get default lateness rule: %w", err)
	}
	return rule, nil
}

// List implements rules.LatenessRuleRepository.
func (r *latenessRuleRepository) List(ctx context.Context) ([]rules.LatenessRule, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, grace_period_minutes, deduction_for_each_minute, created_at, updated_at
		FROM lateness_rules
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list lateness rules: %w", err)
	}
	defer rows.Close()

	var list []rules.LatenessRule
	for rows.Next() {
		var rule rules.LatenessRule
		if err := rows.Scan(
			&rule.ID, &rule.Name, &rule.GracePeriodMinutes, &rule.DeductionForEachMinute,
			&rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lateness rule: %w", err)
		}
		list = append(list, rule)
	}
	return list, rows.Err()
}

// Delete implements rules.LatenessRuleRepository.
func (r *latenessRuleRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM lateness_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lateness rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return rules.ErrLatenessRuleNotFound
	}
	return nil
}

// ==================== OVERTIME RULES ====================

type overtimeRuleRepository struct {
	db *database.DB
}

func NewOvertimeRuleRepository(db *database.DB) rules.OvertimeRuleRepository {
	return &overtimeRuleRepository{db: db}
}

// Create implements rules.OvertimeRuleRepository.
func (r *overtimeRuleRepository) Create(ctx context.Context, rule rules.OvertimeRule) (rules.OvertimeRule, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return rules.OvertimeRule{}, fmt.Errorf("failed to generate rule id: %w", err)
	}
	rule.ID = id.String()

	query := `
		INSERT INTO overtime_rules (id, name, active, approved)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query, rule.ID, rule.Name, rule.Active, rule.Approved).
		Scan(&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return rules.OvertimeRule{}, fmt.Errorf("failed to create overtime rule: %w", err)
	}

	return rule, nil
}

// GetByID implements rules.OvertimeRuleRepository.
func (r *overtimeRuleRepository) GetByID(ctx context.Context, id string) (rules.OvertimeRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, active, approved, created_at, updated_at
		FROM overtime_rules
		WHERE id = $1
	`

	var rule rules.OvertimeRule
	err := q.QueryRow(ctx, query, id).Scan(
		&rule.ID, &rule.Name, &rule.Active, &rule.Approved, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return rules.OvertimeRule{}, rules.ErrOvertimeRuleNotFound
		}
		return rules.OvertimeRule{}, fmt.Errorf("failed to get overtime rule: %w", err)
	}
	return rule, nil
}

// GetDefault implements rules.OvertimeRuleRepository.
func (r *overtimeRuleRepository) GetDefault(ctx context.Context) (rules.OvertimeRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, active, approved, created_at, updated_at
		FROM overtime_rules
		ORDER BY created_at
		LIMIT 1
	`

	var rule rules.OvertimeRule
	err := q.QueryRow(ctx, query).Scan(
		&rule.ID, &rule.Name, &rule.Active, &rule.Approved, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return rules.OvertimeRule{}, rules.ErrOvertimeRuleNotFound
		}
		return rules.OvertimeRule{}, fmt.Errorf("failed to get default overtime rule: %w", err)
	}
	return rule, nil
}

// List implements rules.OvertimeRuleRepository.
func (r *overtimeRuleRepository) List(ctx context.Context) ([]rules.OvertimeRule, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, active, approved, created_at, updated_at
		FROM overtime_rules
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime rules: %w", err)
	}
	defer rows.Close()

	var list []rules.OvertimeRule
	for rows.Next() {
		var rule rules.OvertimeRule
		if err := rows.Scan(
			&rule.ID, &rule.Name, &rule.Active, &rule.Approved, &rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan overtime rule: %w", err)
		}
		list = append(list, rule)
	}
	return list, rows.Err()
}

// Delete implements rules.OvertimeRuleRepository.
func (r *overtimeRuleRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM overtime_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete overtime rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return rules.ErrOvertimeRuleNotFound
	}
	return nil
}
