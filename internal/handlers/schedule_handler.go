package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	availabilityDomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// scheduleStore is the write side of a barber's weekly hours and blocked times.
type scheduleStore interface {
	ListWeekly(ctx context.Context, barberID uint) ([]models.WeeklyAvailability, error)
	ReplaceWeekly(ctx context.Context, barberID uint, rows []models.WeeklyAvailability) error

	ListBlockedTimes(ctx context.Context, barberID uint) ([]models.BlockedTime, error)
	CreateBlockedTime(ctx context.Context, b *models.BlockedTime) error
	GetBlockedTime(ctx context.Context, id uint) (*models.BlockedTime, error)
	DeleteBlockedTime(ctx context.Context, id uint) error
}

type barberLookup interface {
	GetBarber(ctx context.Context, barberID uint) (*models.User, error)
}

type ScheduleHandler struct {
	store       scheduleStore
	barbers     barberLookup
	shops       shopReader
	invalidator availabilityDomain.Invalidator
	audit       *audit.Dispatcher
}

func NewScheduleHandler(
	store scheduleStore,
	barbers barberLookup,
	shops shopReader,
	invalidator availabilityDomain.Invalidator,
	audit *audit.Dispatcher,
) *ScheduleHandler {
	return &ScheduleHandler{
		store:       store,
		barbers:     barbers,
		shops:       shops,
		invalidator: invalidator,
		audit:       audit,
	}
}

type WeeklyDay struct {
	DayOfWeek   int    `json:"day_of_week" binding:"min=0,max=6"`
	IsAvailable bool   `json:"is_available"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Configured  bool   `json:"configured"`
}

type WeeklyUpdateRequest struct {
	Days []WeeklyDay `json:"days" binding:"required,max=7,dive"`
}

// ======================================================
// BARBER SCOPE
// ======================================================

// GetMine and friends act on the caller's own schedule; the admin variants
// take the barber from the :id path parameter.
func (h *ScheduleHandler) GetMine(c *gin.Context) {
	h.getWeekly(c, currentUserID(c))
}

func (h *ScheduleHandler) UpdateMine(c *gin.Context) {
	h.updateWeekly(c, currentUserID(c))
}

func (h *ScheduleHandler) GetForBarber(c *gin.Context) {
	if barberID, ok := h.pathBarber(c); ok {
		h.getWeekly(c, barberID)
	}
}

func (h *ScheduleHandler) UpdateForBarber(c *gin.Context) {
	if barberID, ok := h.pathBarber(c); ok {
		h.updateWeekly(c, barberID)
	}
}

func (h *ScheduleHandler) pathBarber(c *gin.Context) (uint, bool) {
	id, ok := idParam(c, "id")
	if !ok {
		return 0, false
	}
	if _, err := h.barbers.GetBarber(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return 0, false
	}
	return id, true
}

// ======================================================
// WEEKLY AVAILABILITY
// ======================================================

func (h *ScheduleHandler) getWeekly(c *gin.Context, barberID uint) {
	rows, err := h.store.ListWeekly(c.Request.Context(), barberID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_availability", "Could not load the weekly schedule.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": weekFrom(rows)})
}

// weekFrom returns all seven days, filling unconfigured ones with the
// default hours the booking page would use.
func weekFrom(rows []models.WeeklyAvailability) []WeeklyDay {
	week := make([]WeeklyDay, 7)
	for d := range week {
		week[d] = WeeklyDay{
			DayOfWeek:   d,
			IsAvailable: true,
			StartTime:   availabilityDomain.DefaultStart.String(),
			EndTime:     availabilityDomain.DefaultEnd.String(),
		}
	}

	for _, r := range rows {
		if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
			continue
		}
		week[r.DayOfWeek] = WeeklyDay{
			DayOfWeek:   r.DayOfWeek,
			IsAvailable: r.IsAvailable,
			StartTime:   r.StartTime,
			EndTime:     r.EndTime,
			Configured:  true,
		}
	}
	return week
}

func (h *ScheduleHandler) updateWeekly(c *gin.Context, barberID uint) {
	var req WeeklyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid weekly schedule.")
		return
	}

	rows := make([]models.WeeklyAvailability, 0, len(req.Days))
	seen := map[int]bool{}

	for _, d := range req.Days {
		if seen[d.DayOfWeek] {
			httperr.BadRequest(c, "duplicate_day", "Each day of the week can appear once.")
			return
		}
		seen[d.DayOfWeek] = true

		start, end := availabilityDomain.DefaultStart, availabilityDomain.DefaultEnd
		if d.StartTime != "" || d.EndTime != "" || d.IsAvailable {
			var err1, err2 error
			start, err1 = availabilityDomain.ParseClock(d.StartTime)
			end, err2 = availabilityDomain.ParseClock(d.EndTime)
			if err1 != nil || err2 != nil {
				writeError(c, httperr.ErrBusiness("invalid_time"))
				return
			}
			if start >= end {
				writeError(c, httperr.ErrBusiness("invalid_range"))
				return
			}
		}

		rows = append(rows, models.WeeklyAvailability{
			DayOfWeek:   d.DayOfWeek,
			IsAvailable: d.IsAvailable,
			StartTime:   start.String(),
			EndTime:     end.String(),
		})
	}

	ctx := c.Request.Context()
	if err := h.store.ReplaceWeekly(ctx, barberID, rows); err != nil {
		httperr.Internal(c, "failed_to_save_availability", "Could not save the weekly schedule.")
		return
	}

	h.invalidator.InvalidateWeekly(ctx, barberID)

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "weekly_availability_updated",
		Entity:   "user",
		EntityID: &barberID,
		Metadata: map[string]any{"days": len(rows)},
	})

	c.JSON(http.StatusOK, gin.H{"days": weekFrom(rows)})
}

// ======================================================
// BLOCKED TIMES
// ======================================================

type CreateBlockedTimeRequest struct {
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	AllDay    bool   `json:"all_day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Title     string `json:"title" binding:"max=100"`
	Notes     string `json:"notes" binding:"max=255"`
}

func (h *ScheduleHandler) ListMineBlocked(c *gin.Context) {
	h.listBlocked(c, currentUserID(c))
}

func (h *ScheduleHandler) CreateMineBlocked(c *gin.Context) {
	h.createBlocked(c, currentUserID(c))
}

func (h *ScheduleHandler) ListBlockedForBarber(c *gin.Context) {
	if barberID, ok := h.pathBarber(c); ok {
		h.listBlocked(c, barberID)
	}
}

func (h *ScheduleHandler) CreateBlockedForBarber(c *gin.Context) {
	if barberID, ok := h.pathBarber(c); ok {
		h.createBlocked(c, barberID)
	}
}

func (h *ScheduleHandler) listBlocked(c *gin.Context, barberID uint) {
	blocks, err := h.store.ListBlockedTimes(c.Request.Context(), barberID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_blocked_times", "Could not list blocked times.")
		return
	}

	c.JSON(http.StatusOK, blocks)
}

func (h *ScheduleHandler) createBlocked(c *gin.Context, barberID uint) {
	ctx := c.Request.Context()

	var req CreateBlockedTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid blocked time.")
		return
	}

	shop, err := h.shops.GetShop(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	start, end, err := blockRange(shop.Timezone, req)
	if err != nil {
		writeError(c, err)
		return
	}

	block := models.BlockedTime{
		BarberID:      barberID,
		StartDatetime: start,
		EndDatetime:   end,
		AllDay:        req.AllDay,
		Title:         req.Title,
		Notes:         req.Notes,
	}

	if err := h.store.CreateBlockedTime(ctx, &block); err != nil {
		httperr.Internal(c, "failed_to_create_blocked_time", "Could not save the blocked time.")
		return
	}

	h.invalidator.InvalidateBlocked(ctx, barberID)

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "blocked_time_created",
		Entity:   "blocked_time",
		EntityID: &block.ID,
		Metadata: map[string]any{"barber_id": barberID, "date": req.Date, "all_day": req.AllDay},
	})

	c.JSON(http.StatusCreated, block)
}

// DeleteBlocked removes a blocked time. Barbers can only remove their own.
func (h *ScheduleHandler) DeleteBlocked(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	block, err := h.store.GetBlockedTime(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}

	if !currentActor(c).CanSee(block.BarberID) {
		writeError(c, httperr.ErrBusiness("blocked_time_not_found"))
		return
	}

	if err := h.store.DeleteBlockedTime(ctx, id); err != nil {
		httperr.Internal(c, "failed_to_delete_blocked_time", "Could not delete the blocked time.")
		return
	}

	h.invalidator.InvalidateBlocked(ctx, block.BarberID)

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "blocked_time_deleted",
		Entity:   "blocked_time",
		EntityID: &id,
	})

	c.Status(http.StatusNoContent)
}

// blockRange turns a request into absolute instants in the shop time zone.
// An all-day block spans the whole calendar day.
func blockRange(tz string, req CreateBlockedTimeRequest) (time.Time, time.Time, error) {
	date, err := parseShopDate(tz, req.Date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if req.AllDay {
		return date, time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 0, date.Location()), nil
	}

	from, err1 := availabilityDomain.ParseClock(req.StartTime)
	to, err2 := availabilityDomain.ParseClock(req.EndTime)
	if err1 != nil || err2 != nil {
		return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_time")
	}
	if from >= to {
		return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_range")
	}

	return from.On(date), to.On(date), nil
}
