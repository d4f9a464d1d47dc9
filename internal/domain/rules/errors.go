package rules

import "errors"

var (
	ErrLatenessRuleNotFound = errors.New("lateness rule not found")
	ErrOvertimeRuleNotFound = errors.New("overtime rule not found")
)
