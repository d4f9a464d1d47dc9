package holiday

import (
	"context"
	"time"
)

// HolidayRepository holds the holiday calendar.
type HolidayRepository interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	GetByID(ctx context.Context, id string) (Holiday, error)
	List(ctx context.Context) ([]Holiday, error)

	// ListInRange returns holidays with date inside [from, to].
	ListInRange(ctx context.Context, from, to time.Time) ([]Holiday, error)

	Delete(ctx context.Context, id string) error
}
