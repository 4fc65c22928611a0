package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	availabilityDomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

// BarberHandler manages staff accounts. Credentials live with the identity
// provider; only the profile is stored here.
type BarberHandler struct {
	db          *gorm.DB
	invalidator availabilityDomain.Invalidator
	audit       *audit.Dispatcher
}

func NewBarberHandler(db *gorm.DB, invalidator availabilityDomain.Invalidator, audit *audit.Dispatcher) *BarberHandler {
	return &BarberHandler{db: db, invalidator: invalidator, audit: audit}
}

type CreateBarberRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio" binding:"max=500"`
	PhotoURL string `json:"photo_url" binding:"omitempty,url,max=255"`
}

type UpdateBarberRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

func (h *BarberHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Where("role = ?", models.RoleBarber)

	switch c.Query("active") {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	var barbers []models.User
	if err := q.Order("name ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Could not list barbers.")
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid barber.")
		return
	}

	email, ok := validators.NormalizeEmail(req.Email)
	if !ok || email == "" {
		httperr.BadRequest(c, "invalid_email", "Invalid email address.")
		return
	}

	barber := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Phone:    strings.TrimSpace(req.Phone),
		Bio:      req.Bio,
		PhotoURL: req.PhotoURL,
		Role:     models.RoleBarber,
		Active:   true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&barber).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_in_use", "Another account uses this email.")
			return
		}
		httperr.Internal(c, "failed_to_create_barber", "Could not create the barber.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "barber_created",
		Entity:   "user",
		EntityID: &barber.ID,
	})

	c.JSON(http.StatusCreated, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var barber models.User
	if err := db.Where("id = ? AND role = ?", id, models.RoleBarber).First(&barber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, httperr.ErrBusiness("barber_not_found"))
			return
		}
		httperr.Internal(c, "failed_to_get_barber", "Could not load the barber.")
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid barber.")
		return
	}

	if req.Name != nil {
		barber.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		barber.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Bio != nil {
		barber.Bio = *req.Bio
	}
	if req.PhotoURL != nil {
		barber.PhotoURL = *req.PhotoURL
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Could not update the barber.")
		return
	}

	// Deactivating a barber changes what the booking page may offer.
	if req.Active != nil {
		h.invalidator.InvalidateWeekly(c.Request.Context(), barber.ID)
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "barber_updated",
		Entity:   "user",
		EntityID: &barber.ID,
	})

	c.JSON(http.StatusOK, barber)
}
