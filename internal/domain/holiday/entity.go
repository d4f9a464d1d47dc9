package holiday

import "time"

// Holiday is calendar reference data. Reporting treats holidays like rest
// days: they do not count toward absence.
type Holiday struct {
	ID        string
	Name      string
	Date      time.Time // day granularity, UTC midnight
	CreatedAt time.Time
	UpdatedAt time.Time
}
