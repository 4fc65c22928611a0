package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
)

type businessMapping struct {
	status  int
	message string
}

var businessErrors = map[string]businessMapping{
	"invalid_slot":           {http.StatusBadRequest, "That time is not one we offer."},
	"invalid_date":           {http.StatusBadRequest, "Invalid date."},
	"invalid_time":           {http.StatusBadRequest, "Times must look like 09:00 or 9:00 AM."},
	"invalid_range":          {http.StatusBadRequest, "Start time must be before end time."},
	"too_soon":               {http.StatusBadRequest, "That time is too soon to book."},
	"services_required":      {http.StatusBadRequest, "Choose at least one service."},
	"service_not_found":      {http.StatusBadRequest, "Service not found."},
	"barber_not_found":       {http.StatusNotFound, "Barber not found."},
	"booking_not_found":      {http.StatusNotFound, "Booking not found."},
	"blocked_time_not_found": {http.StatusNotFound, "Blocked time not found."},
	"barber_unavailable":     {http.StatusConflict, "This barber is not available on the selected day. Please choose another date."},
	"slot_unavailable":       {http.StatusConflict, "The time you selected is no longer available. Please choose another time."},
	"slot_taken":             {http.StatusConflict, "Someone just booked this time. Please choose another time."},
	"invalid_state":          {http.StatusConflict, "The booking can no longer be changed."},
	"too_late_to_cancel":     {http.StatusConflict, "The booking has already started."},
}

// writeError maps use case errors to the JSON error body.
func writeError(c *gin.Context, err error) {
	if code, ok := httperr.Code(err); ok {
		if m, ok := businessErrors[code]; ok {
			httperr.Write(c, m.status, code, m.message)
			return
		}
		httperr.BadRequest(c, code, code)
		return
	}

	logger.FromContext(c.Request.Context()).
		Error().
		Err(err).
		Str("path", c.FullPath()).
		Msg("request failed")

	httperr.Internal(c, "internal_error", "Something went wrong. Please try again.")
}

func currentUserID(c *gin.Context) uint {
	return c.GetUint(middleware.ContextUserID)
}

func currentActor(c *gin.Context) ucBooking.Actor {
	return ucBooking.Actor{
		UserID: currentUserID(c),
		Role:   c.GetString(middleware.ContextUserRole),
	}
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

func parseShopDate(tz, s string) (time.Time, error) {
	date, err := timezone.ParseDate(tz, s)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return date, nil
}
