package rules

import (
	"time"

	"github.com/shopspring/decimal"
)

// LatenessRule parameterizes the lateness engine. DeductionForEachMinute is a
// money amount per minute late after grace; it feeds compensation, so it is
// decimal, not float.
type LatenessRule struct {
	ID                     string
	Name                   string
	GracePeriodMinutes     int
	DeductionForEachMinute decimal.Decimal
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// OvertimeRule parameterizes the overtime engine. Active gates evaluation
// entirely; Approved gates payout, independent of detection.
type OvertimeRule struct {
	ID        string
	Name      string
	Active    bool
	Approved  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
