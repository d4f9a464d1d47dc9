package rules

import (
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateLatenessRuleRequest struct {
	Name                   string `json:"name"`
	GracePeriodMinutes     int    `json:"grace_period_minutes"`
	DeductionForEachMinute string `json:"deduction_for_each_minute"` // decimal string
}

func (r *CreateLatenessRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.GracePeriodMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_period_minutes",
			Message: "grace_period_minutes must not be negative",
		})
	}
	if d, err := decimal.NewFromString(r.DeductionForEachMinute); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "deduction_for_each_minute",
			Message: "deduction_for_each_minute must be a decimal number",
		})
	} else if d.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "deduction_for_each_minute",
			Message: "deduction_for_each_minute must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LatenessRuleResponse struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	GracePeriodMinutes     int    `json:"grace_period_minutes"`
	DeductionForEachMinute string `json:"deduction_for_each_minute"`
	CreatedAt              string `json:"created_at"`
	UpdatedAt              string `json:"updated_at"`
}

func ToLatenessRuleResponse(r LatenessRule) LatenessRuleResponse {
	return LatenessRuleResponse{
		ID:                     r.ID,
		Name:                   r.Name,
		GracePeriodMinutes:     r.GracePeriodMinutes,
		DeductionForEachMinute: r.DeductionForEachMinute.String(),
		CreatedAt:              r.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:              r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

type CreateOvertimeRuleRequest struct {
	Name     string `json:"name"`
	Active   bool   `json:"active"`
	Approved bool   `json:"approved"`
}

func (r *CreateOvertimeRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type OvertimeRuleResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	Approved  bool   `json:"approved"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func ToOvertimeRuleResponse(r OvertimeRule) OvertimeRuleResponse {
	return OvertimeRuleResponse{
		ID:        r.ID,
		Name:      r.Name,
		Active:    r.Active,
		Approved:  r.Approved,
		CreatedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
