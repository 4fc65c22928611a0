package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	availabilityDomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	ucBooking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
)

type bookingsByDate interface {
	Execute(ctx context.Context, barberID uint, date time.Time) ([]dto.BookingListDTO, error)
}

type bookingsByMonth interface {
	Execute(ctx context.Context, barberID uint, year int, month int) ([]dto.BookingListDTO, error)
}

type statusChanger interface {
	Execute(ctx context.Context, actor ucBooking.Actor, bookingID uint) (*models.Booking, error)
}

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	byDate   bookingsByDate
	byMonth  bookingsByMonth
	cancel   statusChanger
	complete statusChanger
	noShow   statusChanger
}

func NewBookingHandler(
	byDate bookingsByDate,
	byMonth bookingsByMonth,
	cancel statusChanger,
	complete statusChanger,
	noShow statusChanger,
) *BookingHandler {
	return &BookingHandler{
		byDate:   byDate,
		byMonth:  byMonth,
		cancel:   cancel,
		complete: complete,
		noShow:   noShow,
	}
}

// ======================================================
// LIST
// ======================================================

// ListMineByDate lists the caller's own bookings for ?date=.
func (h *BookingHandler) ListMineByDate(c *gin.Context) {
	h.listByDate(c, currentUserID(c))
}

// ListByDate lists every barber's bookings, or one barber's with ?barber_id=.
func (h *BookingHandler) ListByDate(c *gin.Context) {
	barberID, ok := barberFilter(c)
	if !ok {
		return
	}
	h.listByDate(c, barberID)
}

func (h *BookingHandler) ListMineByMonth(c *gin.Context) {
	h.listByMonth(c, currentUserID(c))
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	barberID, ok := barberFilter(c)
	if !ok {
		return
	}
	h.listByMonth(c, barberID)
}

func (h *BookingHandler) listByDate(c *gin.Context, barberID uint) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	date, err := time.Parse(availabilityDomain.DateLayout, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	bookings, err := h.byDate.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) listByMonth(c *gin.Context, barberID uint) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	bookings, err := h.byMonth.Execute(c.Request.Context(), barberID, year, month)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    month,
		"bookings": bookings,
	})
}

func barberFilter(c *gin.Context) (uint, bool) {
	raw := c.Query("barber_id")
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Invalid barber.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// STATUS CHANGES
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.cancel)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.complete)
}

func (h *BookingHandler) NoShow(c *gin.Context) {
	h.changeStatus(c, h.noShow)
}

func (h *BookingHandler) changeStatus(c *gin.Context, uc statusChanger) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	b, err := uc.Execute(c.Request.Context(), currentActor(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}
