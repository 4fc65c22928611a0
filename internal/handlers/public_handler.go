package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	availabilityDomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucAvailability "github.com/BruksfildServices01/barbershop-booking/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

type shopReader interface {
	GetShop(ctx context.Context) (*models.Shop, error)
}

type availabilityResolver interface {
	Execute(ctx context.Context, in ucAvailability.Input) (availabilityDomain.Result, error)
}

type bookingCreator interface {
	Execute(ctx context.Context, in ucBooking.CreateBookingInput) (*models.Booking, error)
}

// referenceAction is a use case driven by the customer's booking reference.
type referenceAction interface {
	Execute(ctx context.Context, reference string) (*models.Booking, error)
}

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	shops        shopReader
	availability availabilityResolver
	create       bookingCreator
	lookup       referenceAction
	cancel       referenceAction
}

func NewPublicHandler(
	db *gorm.DB,
	shops shopReader,
	availability availabilityResolver,
	create bookingCreator,
	lookup referenceAction,
	cancel referenceAction,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		shops:        shops,
		availability: availability,
		create:       create,
		lookup:       lookup,
		cancel:       cancel,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	BarberID    uint   `json:"barber_id" binding:"required"`
	ServiceIDs  []uint `json:"service_ids" binding:"required,min=1"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Slot        string `json:"slot" binding:"required"` // "2:00 PM" or "14:00"
	Notes       string `json:"notes"`
}

type PublicBarber struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photo_url"`
}

type PublicBooking struct {
	Reference   string   `json:"reference"`
	Status      string   `json:"status"`
	BarberID    uint     `json:"barber_id"`
	BarberName  string   `json:"barber_name,omitempty"`
	Date        string   `json:"date"`
	StartTime   string   `json:"start_time"`
	Slot        string   `json:"slot"`
	Services    []string `json:"services"`
	TotalPrice  float64  `json:"total_price"`
	DurationMin int      `json:"duration_min"`
}

func toPublicBooking(b *models.Booking) PublicBooking {
	services := make([]string, 0, len(b.Services))
	for _, s := range b.Services {
		services = append(services, s.Name)
	}

	slot := b.StartTime
	if clock, err := availabilityDomain.ParseClock(b.StartTime); err == nil {
		slot = clock.Label()
	}

	return PublicBooking{
		Reference:   b.Reference,
		Status:      b.Status,
		BarberID:    b.BarberID,
		BarberName:  b.Barber.Name,
		Date:        b.Date,
		StartTime:   b.StartTime,
		Slot:        slot,
		Services:    services,
		TotalPrice:  b.TotalPrice,
		DurationMin: b.TotalDurationMin,
	}
}

////////////////////////////////////////////////////////
// SHOP / BARBERS / SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) Shop(c *gin.Context) {
	shop, err := h.shops.GetShop(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":                shop.Name,
		"phone":               shop.Phone,
		"address":             shop.Address,
		"timezone":            timezone.Location(shop.Timezone).String(),
		"min_advance_minutes": shop.MinAdvanceMinutes,
		"slots":               availabilityDomain.Catalog(),
	})
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	var barbers []models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("role = ? AND active = ?", models.RoleBarber, true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Could not list barbers.")
		return
	}

	out := make([]PublicBarber, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, PublicBarber{ID: b.ID, Name: b.Name, Bio: b.Bio, PhotoURL: b.PhotoURL})
	}

	httpresp.List(c, out)
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Where("active = ?", true)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.BarberService
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

// Availability never fails on a missing or malformed barber/date; the
// resolver answers with an explanatory incomplete state instead.
func (h *PublicHandler) Availability(c *gin.Context) {
	ctx := c.Request.Context()

	shop, err := h.shops.GetShop(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	in := ucAvailability.Input{Selected: strings.TrimSpace(c.Query("selected"))}

	if id, err := strconv.ParseUint(c.Param("id"), 10, 64); err == nil {
		in.BarberID = uint(id)
	}

	if dateStr := c.Query("date"); dateStr != "" {
		if date, err := timezone.ParseDate(shop.Timezone, dateStr); err == nil {
			in.Date = date
		}
	}

	res, err := h.availability.Execute(ctx, in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

////////////////////////////////////////////////////////
// BOOKINGS
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Please fill in every required field.")
		return
	}

	phone, ok := validators.NormalizePhone(req.ClientPhone)
	if !ok {
		httperr.BadRequest(c, "invalid_phone", "Invalid phone number.")
		return
	}

	email, ok := validators.NormalizeEmail(req.ClientEmail)
	if !ok {
		httperr.BadRequest(c, "invalid_email", "Invalid email address.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		BarberID:    req.BarberID,
		ServiceIDs:  req.ServiceIDs,
		ClientName:  req.ClientName,
		ClientPhone: phone,
		ClientEmail: email,
		Date:        req.Date,
		Slot:        req.Slot,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPublicBooking(b))
}

func (h *PublicHandler) GetBooking(c *gin.Context) {
	b, err := h.lookup.Execute(c.Request.Context(), c.Param("reference"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPublicBooking(b))
}

func (h *PublicHandler) CancelBooking(c *gin.Context) {
	b, err := h.cancel.Execute(c.Request.Context(), c.Param("reference"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPublicBooking(b))
}
