package booking

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	availabilityDomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// LookupBooking finds a booking by the reference handed to the customer.
type LookupBooking struct {
	repo domain.Repository
}

func NewLookupBooking(repo domain.Repository) *LookupBooking {
	return &LookupBooking{repo: repo}
}

func (uc *LookupBooking) Execute(ctx context.Context, reference string) (*models.Booking, error) {
	if reference == "" {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	return uc.repo.GetBookingByReference(ctx, reference)
}

// CancelByReference lets a customer cancel their own booking before it starts.
type CancelByReference struct {
	repo        domain.Repository
	invalidator availabilityDomain.Invalidator
	audit       *audit.Dispatcher
	metrics     *metrics.BookingMetrics
}

func NewCancelByReference(
	repo domain.Repository,
	invalidator availabilityDomain.Invalidator,
	audit *audit.Dispatcher,
	m *metrics.BookingMetrics,
) *CancelByReference {
	return &CancelByReference{
		repo:        repo,
		invalidator: invalidator,
		audit:       audit,
		metrics:     m,
	}
}

func (uc *CancelByReference) Execute(ctx context.Context, reference string) (*models.Booking, error) {
	shop, err := uc.repo.GetShop(ctx)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	start, err := timezone.ParseDateTime(shop.Timezone, b.Date, b.StartTime)
	if err != nil {
		return nil, err
	}

	now := nowFunc().In(start.Location())
	if !now.Before(start) {
		return nil, httperr.ErrBusiness("too_late_to_cancel")
	}

	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.invalidator.InvalidateBookings(ctx, b.BarberID, b.Date)

	uc.metrics.ObserveBooking("cancelled_by_client")
	uc.audit.Dispatch(audit.Event{
		Action:   "booking_cancelled_by_client",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
