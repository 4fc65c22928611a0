package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Store is the read side the resolver is fed from.
type Store interface {
	// GetWeeklyAvailability returns nil, nil when the barber has no row for day.
	GetWeeklyAvailability(
		ctx context.Context,
		barberID uint,
		day time.Weekday,
	) (*models.WeeklyAvailability, error)

	ListActiveBookings(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.Booking, error)

	ListBlockedTimes(
		ctx context.Context,
		barberID uint,
	) ([]models.BlockedTime, error)
}

// Invalidator drops cached reads after a write.
type Invalidator interface {
	InvalidateWeekly(ctx context.Context, barberID uint)
	InvalidateBookings(ctx context.Context, barberID uint, date string)
	InvalidateBlocked(ctx context.Context, barberID uint)
}

type NopInvalidator struct{}

func (NopInvalidator) InvalidateWeekly(context.Context, uint)           {}
func (NopInvalidator) InvalidateBookings(context.Context, uint, string) {}
func (NopInvalidator) InvalidateBlocked(context.Context, uint)          {}
