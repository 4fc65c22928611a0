package booking

import (
	"context"
	"time"

	availabilityDomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(repo domain.Repository) *ListBookingsByDate {
	return &ListBookingsByDate{repo: repo}
}

// Execute lists one day; a zero barberID lists every barber.
func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	from := date.Format(availabilityDomain.DateLayout)
	to := date.AddDate(0, 0, 1).Format(availabilityDomain.DateLayout)

	bookings, err := uc.repo.ListBookingsForPeriod(ctx, barberID, from, to)
	if err != nil {
		return nil, err
	}

	return toListDTO(bookings), nil
}

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(repo domain.Repository) *ListBookingsByMonth {
	return &ListBookingsByMonth{repo: repo}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	barberID uint,
	year int,
	month int,
) ([]dto.BookingListDTO, error) {

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	bookings, err := uc.repo.ListBookingsForPeriod(
		ctx,
		barberID,
		start.Format(availabilityDomain.DateLayout),
		end.Format(availabilityDomain.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	return toListDTO(bookings), nil
}

func toListDTO(bookings []models.Booking) []dto.BookingListDTO {
	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		names := make([]string, 0, len(b.Services))
		for _, s := range b.Services {
			names = append(names, s.Name)
		}

		label := b.StartTime
		if c, err := availabilityDomain.ParseClock(b.StartTime); err == nil {
			label = c.Label()
		}

		out = append(out, dto.BookingListDTO{
			ID:          b.ID,
			Reference:   b.Reference,
			BarberID:    b.BarberID,
			BarberName:  b.Barber.Name,
			Date:        b.Date,
			StartTime:   b.StartTime,
			Slot:        label,
			Status:      b.Status,
			ClientName:  b.Client.Name,
			ClientPhone: b.Client.Phone,
			Services:    names,
			TotalPrice:  b.TotalPrice,
			DurationMin: b.TotalDurationMin,
		})
	}
	return out
}
