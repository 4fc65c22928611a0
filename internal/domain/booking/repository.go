package booking

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Repository interface {
	// -------- Shop / staff --------
	GetShop(ctx context.Context) (*models.Shop, error)

	GetBarber(ctx context.Context, barberID uint) (*models.User, error)

	// -------- Services --------
	ListServicesByIDs(ctx context.Context, ids []uint) ([]models.BarberService, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Booking --------
	CreateBooking(ctx context.Context, b *models.Booking) error

	GetBooking(ctx context.Context, id uint) (*models.Booking, error)

	GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error)

	UpdateBooking(ctx context.Context, b *models.Booking) error

	// ListBookingsForPeriod returns bookings with from <= date < to.
	// A zero barberID lists every barber.
	ListBookingsForPeriod(
		ctx context.Context,
		barberID uint,
		from string,
		to string,
	) ([]models.Booking, error)
}
