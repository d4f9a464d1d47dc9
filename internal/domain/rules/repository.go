package rules

import "context"

// LatenessRuleRepository holds lateness rule configuration.
type LatenessRuleRepository interface {
	Create(ctx context.Context, rule LatenessRule) (LatenessRule, error)
	GetByID(ctx context.Context, id string) (LatenessRule, error)

	// GetDefault returns the rule evaluated when none is named explicitly
	// (the oldest configured rule).
	GetDefault(ctx context.Context) (LatenessRule, error)

	List(ctx context.Context) ([]LatenessRule, error)
	Delete(ctx context.Context, id string) error
}

// OvertimeRuleRepository holds overtime rule configuration.
type OvertimeRuleRepository interface {
	Create(ctx context.Context, rule OvertimeRule) (OvertimeRule, error)
	GetByID(ctx context.Context, id string) (OvertimeRule, error)
	GetDefault(ctx context.Context) (OvertimeRule, error)
	List(ctx context.Context) ([]OvertimeRule, error)
	Delete(ctx context.Context, id string) error
}
