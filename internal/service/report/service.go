package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/holiday"
	"github.com/chronohr/attendance-backend-go/internal/domain/report"
	"github.com/chronohr/attendance-backend-go/internal/domain/rules"
	"github.com/chronohr/attendance-backend-go/internal/domain/shift"
	"github.com/chronohr/attendance-backend-go/internal/pkg/validator"
)

type reportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	scheduleSvc    shift.ScheduleService
	latenessRepo   rules.LatenessRuleRepository
	overtimeRepo   rules.OvertimeRuleRepository
	holidayRepo    holiday.HolidayRepository
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	scheduleSvc shift.ScheduleService,
	latenessRepo rules.LatenessRuleRepository,
	overtimeRepo rules.OvertimeRuleRepository,
	holidayRepo holiday.HolidayRepository,
) report.ReportService {
	return &reportServiceImpl{
		attendanceRepo: attendanceRepo,
		scheduleSvc:    scheduleSvc,
		latenessRepo:   latenessRepo,
		overtimeRepo:   overtimeRepo,
		holidayRepo:    holidayRepo,
	}
}

func (s *reportServiceImpl) DailyReport(ctx context.Context, req report.DailyReportRequest) (report.DailyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.DailyReportResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	dayStart, dayEnd := attendance.DayBounds(date)

	records, err := s.attendanceRepo.ListByDay(ctx, dayStart, dayEnd)
	if err != nil {
		return report.DailyReportResponse{}, fmt.Errorf("failed to list records for day: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToResponse(rec))
	}

	return report.DailyReportResponse{
		Date:    date.Format("2006-01-02"),
		Records: responses,
	}, nil
}

// monthlySummary aggregates the ledger-derived portion of the monthly report.
// Days covered by a holiday do not count as absence.
func monthlySummary(records []attendance.AttendanceRecord, daysInMonth, holidayCount int) (totalMinutes, daysPresent, daysAbsent int) {
	for _, rec := range records {
		totalMinutes += rec.TotalWorkMinutes
		if len(rec.Punches) > 0 && !rec.HasMissedPunch {
			daysPresent++
		}
	}
	daysAbsent = daysInMonth - len(records) - holidayCount
	if daysAbsent < 0 {
		daysAbsent = 0
	}
	return totalMinutes, daysPresent, daysAbsent
}

func (s *reportServiceImpl) MonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReportResponse{}, err
	}

	start, end := report.MonthBounds(req.Month, req.Year)
	daysInMonth := report.DaysInMonth(req.Month, req.Year)

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, req.EmployeeID, start, end)
	if err != nil {
		return report.MonthlyReportResponse{}, fmt.Errorf("failed to list records for month: %w", err)
	}

	holidays, err := s.holidayRepo.ListInRange(ctx, start, end)
	if err != nil {
		return report.MonthlyReportResponse{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	totalMinutes, daysPresent, daysAbsent := monthlySummary(records, daysInMonth, len(holidays))

	lateCount, overtimeMinutes, err := s.aggregateVerdicts(ctx, records)
	if err != nil {
		return report.MonthlyReportResponse{}, err
	}

	return report.MonthlyReportResponse{
		EmployeeID:       req.EmployeeID,
		Month:            req.Month,
		Year:             req.Year,
		TotalWorkingDays: daysInMonth,
		DaysPresent:      daysPresent,
		DaysAbsent:       daysAbsent,
		Holidays:         len(holidays),
		TotalWorkMinutes: totalMinutes,
		LateCount:        lateCount,
		OvertimeMinutes:  overtimeMinutes,
	}, nil
}

// aggregateVerdicts runs the lateness and overtime engines over each record
// against its governing shift and the default rules. Records with no
// resolvable shift contribute nothing.
func (s *reportServiceImpl) aggregateVerdicts(ctx context.Context, records []attendance.AttendanceRecord) (lateCount, overtimeMinutes int, err error) {
	if len(records) == 0 {
		return 0, 0, nil
	}

	latenessRule, err := s.latenessRepo.GetDefault(ctx)
	if errors.Is(err, rules.ErrLatenessRuleNotFound) {
		latenessRule = rules.LatenessRule{}
	} else if err != nil {
		return 0, 0, fmt.Errorf("failed to load lateness rule: %w", err)
	}

	overtimeRule, err := s.overtimeRepo.GetDefault(ctx)
	if errors.Is(err, rules.ErrOvertimeRuleNotFound) {
		overtimeRule = rules.OvertimeRule{}
	} else if err != nil {
		return 0, 0, fmt.Errorf("failed to load overtime rule: %w", err)
	}

	for _, rec := range records {
		resolved, err := s.scheduleSvc.Resolve(ctx, rec.EmployeeID, rec.Date)
		if errors.Is(err, shift.ErrAssignmentNotFound) || errors.Is(err, shift.ErrAssignmentPending) {
			continue
		}
		if err != nil {
			return 0, 0, fmt.Errorf("failed to resolve shift for %s: %w", rec.Date.Format("2006-01-02"), err)
		}

		if v := rules.EvaluateLateness(rec, resolved.Shift, latenessRule); v.IsLate {
			lateCount++
		}
		overtimeMinutes += rules.EvaluateOvertime(rec, resolved.Shift, overtimeRule).OvertimeMinutes
	}
	return lateCount, overtimeMinutes, nil
}
