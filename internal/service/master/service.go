package master

import (
	"context"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/holiday"
	"github.com/chronohr/attendance-backend-go/internal/domain/rules"
	"github.com/shopspring/decimal"
)

// MasterService administers the reference configuration the engines and the
// reporting layer evaluate against: lateness/overtime rules and the holiday
// calendar.
type MasterService interface {
	// Lateness rule operations
	CreateLatenessRule(ctx context.Context, req rules.CreateLatenessRuleRequest) (rules.LatenessRuleResponse, error)
	GetLatenessRule(ctx context.Context, id string) (rules.LatenessRuleResponse, error)
	ListLatenessRules(ctx context.Context) ([]rules.LatenessRuleResponse, error)
	DeleteLatenessRule(ctx context.Context, id string) error

	// Overtime rule operations
	CreateOvertimeRule(ctx context.Context, req rules.CreateOvertimeRuleRequest) (rules.OvertimeRuleResponse, error)
	GetOvertimeRule(ctx context.Context, id string) (rules.OvertimeRuleResponse, error)
	ListOvertimeRules(ctx context.Context) ([]rules.OvertimeRuleResponse, error)
	DeleteOvertimeRule(ctx context.Context, id string) error

	// Holiday operations
	CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error)
	GetHoliday(ctx context.Context, id string) (holiday.HolidayResponse, error)
	ListHolidays(ctx context.Context) ([]holiday.HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	latenessRepo rules.LatenessRuleRepository
	overtimeRepo rules.OvertimeRuleRepository
	holidayRepo  holiday.HolidayRepository
}

func NewMasterService(
	latenessRepo rules.LatenessRuleRepository,
	overtimeRepo rules.OvertimeRuleRepository,
	holidayRepo holiday.HolidayRepository,
) MasterService {
	return &masterServiceImpl{
		latenessRepo: latenessRepo,
		overtimeRepo: overtimeRepo,
		holidayRepo:  holidayRepo,
	}
}

// ==================== LATENESS RULES ====================

func (s *masterServiceImpl) CreateLatenessRule(ctx context.Context, req rules.CreateLatenessRuleRequest) (rules.LatenessRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return rules.LatenessRuleResponse{}, err
	}

	deduction, _ := decimal.NewFromString(req.DeductionForEachMinute)
	entity := rules.LatenessRule{
		Name:                   req.Name,
		GracePeriodMinutes:     req.GracePeriodMinutes,
		DeductionForEachMinute: deduction,
	}

	created, err := s.latenessRepo.Create(ctx, entity)
	if err != nil {
		return rules.LatenessRuleResponse{}, fmt.Errorf("failed to create lateness rule: %w", err)
	}
	return rules.ToLatenessRuleResponse(created), nil
}

func (s *masterServiceImpl) GetLatenessRule(ctx context.Context, id string) (rules.LatenessRuleResponse, error) {
	rule, err := s.latenessRepo.GetByID(ctx, id)
	if err != nil {
		return rules.LatenessRuleResponse{}, err
	}
	return rules.ToLatenessRuleResponse(rule), nil
}

func (s *masterServiceImpl) ListLatenessRules(ctx context.Context) ([]rules.LatenessRuleResponse, error) {
	list, err := s.latenessRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lateness rules: %w", err)
	}

	responses := make([]rules.LatenessRuleResponse, 0, len(list))
	for _, r := range list {
		responses = append(responses, rules.ToLatenessRuleResponse(r))
	}
	return responses, nil
}

func (s *masterServiceImpl) DeleteLatenessRule(ctx context.Context, id string) error {
	if _, err := s.latenessRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.latenessRepo.Delete(ctx, id)
}

// ==================== OVERTIME RULES ====================

func (s *masterServiceImpl) CreateOvertimeRule(ctx context.Context, req rules.CreateOvertimeRuleRequest) (rules.OvertimeRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return rules.OvertimeRuleResponse{}, err
	}

	entity := rules.OvertimeRule{
		Name:     req.Name,
		Active:   req.Active,
		Approved: req.Approved,
	}

	created, err := s.overtimeRepo.Create(ctx, entity)
	if err != nil {
		return rules.OvertimeRuleResponse{}, fmt.Errorf("failed to create overtime rule: %w", err)
	}
	return rules.ToOvertimeRuleResponse(created), nil
}

func (s *masterServiceImpl) GetOvertimeRule(ctx context.Context, id string) (rules.OvertimeRuleResponse, error) {
	rule, err := s.overtimeRepo.GetByID(ctx, id)
	if err != nil {
		return rules.OvertimeRuleResponse{}, err
	}
	return rules.ToOvertimeRuleResponse(rule), nil
}

func (s *masterServiceImpl) ListOvertimeRules(ctx context.Context) ([]rules.OvertimeRuleResponse, error) {
	list, err := s.overtimeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime rules: %w", err)
	}

	responses := make([]rules.OvertimeRuleResponse, 0, len(list))
	for _, r := range list {
		responses = append(responses, rules.ToOvertimeRuleResponse(r))
	}
	return responses, nil
}

func (s *masterServiceImpl) DeleteOvertimeRule(ctx context.Context, id string) error {
	if _, err := s.overtimeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.overtimeRepo.Delete(ctx, id)
}

// ==================== HOLIDAYS ====================

func (s *masterServiceImpl) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	entity := holiday.Holiday{
		Name: req.Name,
		Date: date.UTC(),
	}

	created, err := s.holidayRepo.Create(ctx, entity)
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return holiday.ToResponse(created), nil
}

func (s *masterServiceImpl) GetHoliday(ctx context.Context, id string) (holiday.HolidayResponse, error) {
	h, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return holiday.ToResponse(h), nil
}

func (s *masterServiceImpl) ListHolidays(ctx context.Context) ([]holiday.HolidayResponse, error) {
	list, err := s.holidayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(list))
	for _, h := range list {
		responses = append(responses, holiday.ToResponse(h))
	}
	return responses, nil
}

func (s *masterServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	if _, err := s.holidayRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.holidayRepo.Delete(ctx, id)
}
