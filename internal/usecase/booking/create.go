package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	availabilityDomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucAvailability "github.com/BruksfildServices01/barbershop-booking/internal/usecase/availability"
)

var nowFunc = time.Now

// AvailabilityResolver is satisfied by ucAvailability.GetAvailability.
type AvailabilityResolver interface {
	Execute(ctx context.Context, in ucAvailability.Input) (availabilityDomain.Result, error)
}

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	BarberID   uint
	ServiceIDs []uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Date  string
	Slot  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo         domain.Repository
	availability AvailabilityResolver
	invalidator  availabilityDomain.Invalidator
	audit        *audit.Dispatcher
	metrics      *metrics.BookingMetrics
}

func NewCreateBooking(
	repo domain.Repository,
	availability AvailabilityResolver,
	invalidator availabilityDomain.Invalidator,
	audit *audit.Dispatcher,
	m *metrics.BookingMetrics,
) *CreateBooking {
	return &CreateBooking{
		repo:         repo,
		availability: availability,
		invalidator:  invalidator,
		audit:        audit,
		metrics:      m,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Shop settings
	// --------------------------------------------------
	shop, err := uc.repo.GetShop(ctx)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Slot and date in the shop time zone
	// --------------------------------------------------
	slot, ok := availabilityDomain.LookupSlot(in.Slot)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_slot")
	}

	date, err := timezone.ParseDate(shop.Timezone, in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	start := slot.Time.On(date)

	// --------------------------------------------------
	// 3. Minimum notice
	// --------------------------------------------------
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance < 0 {
		minAdvance = 0
	}

	now := nowFunc().In(date.Location())
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4. Services
	// --------------------------------------------------
	ids := uniqueIDs(in.ServiceIDs)
	if len(ids) == 0 {
		return nil, httperr.ErrBusiness("services_required")
	}

	services, err := uc.repo.ListServicesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(services) != len(ids) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// --------------------------------------------------
	// 5. Slot must be bookable right now
	// --------------------------------------------------
	res, err := uc.availability.Execute(ctx, ucAvailability.Input{
		BarberID: in.BarberID,
		Date:     date,
		Selected: slot.Label,
	})
	if err != nil {
		return nil, err
	}

	switch {
	case res.State == availabilityDomain.StateClosed:
		return nil, httperr.ErrBusiness("barber_unavailable")
	case res.State != availabilityDomain.StateReady || !res.Available(slot.Label):
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	// --------------------------------------------------
	// 6. Client (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		strings.TrimSpace(in.ClientName),
		in.ClientPhone,
		strings.ToLower(strings.TrimSpace(in.ClientEmail)),
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Insert; the unique index settles races
	// --------------------------------------------------
	price, minutes := domain.Totals(services)

	b := &models.Booking{
		Reference:        uuid.NewString(),
		BarberID:         in.BarberID,
		ClientID:         client.ID,
		Services:         services,
		Date:             date.Format(availabilityDomain.DateLayout),
		StartTime:        slot.Time.String(),
		Status:           string(domain.InitialStatus()),
		TotalPrice:       price,
		TotalDurationMin: minutes,
		Notes:            strings.TrimSpace(in.Notes),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		if httperr.IsUniqueViolation(err) || httperr.IsExclusionConflict(err) {
			uc.metrics.ObserveBooking("conflict")
			uc.audit.Dispatch(audit.Event{
				Action: "booking_conflict",
				Entity: "booking",
				Metadata: map[string]any{
					"barber_id": in.BarberID,
					"date":      b.Date,
					"start":     b.StartTime,
				},
			})
			return nil, httperr.ErrBusiness("slot_taken")
		}
		return nil, err
	}

	uc.invalidator.InvalidateBookings(ctx, b.BarberID, b.Date)

	// --------------------------------------------------
	// 8. Audit
	// --------------------------------------------------
	uc.metrics.ObserveBooking("created")
	uc.audit.Dispatch(audit.Event{
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"reference": b.Reference},
	})

	return b, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
