package exception

import "errors"

var (
	ErrExceptionNotFound         = errors.New("time exception not found")
	ErrExceptionAlreadyProcessed = errors.New("time exception has already been approved or rejected")
)
