package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	availabilityDomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	ucAvailability "github.com/BruksfildServices01/barbershop-booking/internal/usecase/availability"
)

type fakeRepo struct {
	shop      models.Shop
	services  map[uint]models.BarberService
	bookings  map[uint]*models.Booking
	clients   []models.Client
	createErr error
	updated   int
	lastFrom  string
	lastTo    string
	lastBarb  uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shop: models.Shop{Timezone: "UTC", MinAdvanceMinutes: 60},
		services: map[uint]models.BarberService{
			1: {ID: 1, Name: "Haircut", Price: 30, DurationMin: 30},
			2: {ID: 2, Name: "Beard", Price: 15, DurationMin: 20},
		},
		bookings: map[uint]*models.Booking{},
	}
}

func (r *fakeRepo) GetShop(context.Context) (*models.Shop, error) {
	s := r.shop
	return &s, nil
}

func (r *fakeRepo) GetBarber(_ context.Context, id uint) (*models.User, error) {
	return &models.User{ID: id, Role: models.RoleBarber, Active: true}, nil
}

func (r *fakeRepo) ListServicesByIDs(_ context.Context, ids []uint) ([]models.BarberService, error) {
	var out []models.BarberService
	for _, id := range ids {
		if s, ok := r.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, name, phone, email string) (*models.Client, error) {
	c := models.Client{ID: uint(len(r.clients) + 1), Name: name, Phone: phone, Email: email}
	r.clients = append(r.clients, c)
	return &c, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	b.ID = uint(len(r.bookings) + 1)
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) GetBookingByReference(_ context.Context, ref string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.Reference == ref {
			cp := *b
			return &cp, nil
		}
	}
	return nil, httperr.ErrBusiness("booking_not_found")
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	r.updated++
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) ListBookingsForPeriod(_ context.Context, barberID uint, from, to string) ([]models.Booking, error) {
	r.lastBarb, r.lastFrom, r.lastTo = barberID, from, to
	var out []models.Booking
	for _, b := range r.bookings {
		if (barberID == 0 || b.BarberID == barberID) && b.Date >= from && b.Date < to {
			out = append(out, *b)
		}
	}
	return out, nil
}

// resolverFunc adapts a function into an AvailabilityResolver.
type resolverFunc func(in ucAvailability.Input) availabilityDomain.Result

func (f resolverFunc) Execute(_ context.Context, in ucAvailability.Input) (availabilityDomain.Result, error) {
	return f(in), nil
}

// openDay resolves with default hours and nothing booked.
func openDay(in ucAvailability.Input) availabilityDomain.Result {
	return availabilityDomain.Resolve(availabilityDomain.Input{
		BarberID: in.BarberID,
		Date:     in.Date,
		Selected: in.Selected,
		Weekly:   availabilityDomain.Empty[*availabilityDomain.WeeklyRecord](),
		Bookings: availabilityDomain.Empty[[]availabilityDomain.BookingRecord](),
		Blocks:   availabilityDomain.Empty[[]availabilityDomain.BlockRecord](),
	})
}

type recordingInvalidator struct {
	availabilityDomain.NopInvalidator
	dates []string
}

func (r *recordingInvalidator) InvalidateBookings(_ context.Context, _ uint, date string) {
	r.dates = append(r.dates, date)
}

var errUniqueViolation = &pgconn.PgError{Code: "23505"}

var errBoom = errors.New("boom")

func freezeNow(t *testing.T, now time.Time) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = prev })
}
