package report

import "context"

// ReportService aggregates daily and monthly summaries from the punch
// ledger. Reads only; never mutates records.
type ReportService interface {
	DailyReport(ctx context.Context, req DailyReportRequest) (DailyReportResponse, error)
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)
}
