package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	availabilityDomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// Actor is the authenticated staff member performing a change.
type Actor struct {
	UserID uint
	Role   string
}

// CanSee reports whether the actor may act on bookings of barberID.
func (a Actor) CanSee(barberID uint) bool {
	return a.Role == models.RoleSuperadmin || a.UserID == barberID
}

type transitionFunc func(b *models.Booking, now time.Time) error

// ChangeBookingStatus runs one staff-side status transition
// (cancel, complete, no-show).
type ChangeBookingStatus struct {
	repo        domain.Repository
	invalidator availabilityDomain.Invalidator
	audit       *audit.Dispatcher
	metrics     *metrics.BookingMetrics

	apply  transitionFunc
	action string
}

func newChangeBookingStatus(
	repo domain.Repository,
	invalidator availabilityDomain.Invalidator,
	audit *audit.Dispatcher,
	m *metrics.BookingMetrics,
	apply transitionFunc,
	action string,
) *ChangeBookingStatus {
	return &ChangeBookingStatus{
		repo:        repo,
		invalidator: invalidator,
		audit:       audit,
		metrics:     m,
		apply:       apply,
		action:      action,
	}
}

func NewCancelBooking(repo domain.Repository, inv availabilityDomain.Invalidator, audit *audit.Dispatcher, m *metrics.BookingMetrics) *ChangeBookingStatus {
	return newChangeBookingStatus(repo, inv, audit, m, domain.Cancel, "cancelled")
}

func NewCompleteBooking(repo domain.Repository, inv availabilityDomain.Invalidator, audit *audit.Dispatcher, m *metrics.BookingMetrics) *ChangeBookingStatus {
	return newChangeBookingStatus(repo, inv, audit, m, domain.Complete, "completed")
}

func NewMarkNoShow(repo domain.Repository, inv availabilityDomain.Invalidator, audit *audit.Dispatcher, m *metrics.BookingMetrics) *ChangeBookingStatus {
	return newChangeBookingStatus(repo, inv, audit, m, domain.MarkNoShow, "no_show")
}

func (uc *ChangeBookingStatus) Execute(
	ctx context.Context,
	actor Actor,
	bookingID uint,
) (*models.Booking, error) {

	shop, err := uc.repo.GetShop(ctx)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Barbers never learn about other barbers' bookings.
	if !actor.CanSee(b.BarberID) {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := nowFunc().In(timezone.Location(shop.Timezone))
	if err := uc.apply(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.invalidator.InvalidateBookings(ctx, b.BarberID, b.Date)

	uc.metrics.ObserveBooking(uc.action)
	userID := actor.UserID
	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_" + uc.action,
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
