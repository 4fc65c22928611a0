package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	availabilityDomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

type auditFilter struct {
	action string
	entity string
	userID uint64
	from   time.Time
	to     time.Time
}

func auditFilterFrom(c *gin.Context) auditFilter {
	f := auditFilter{
		action: c.Query("action"),
		entity: c.Query("entity"),
	}

	f.userID, _ = strconv.ParseUint(c.Query("user_id"), 10, 64)

	if from, err := time.Parse(availabilityDomain.DateLayout, c.Query("from")); err == nil {
		f.from = from
	}
	if to, err := time.Parse(availabilityDomain.DateLayout, c.Query("to")); err == nil {
		f.to = to.AddDate(0, 0, 1)
	}
	return f
}

func (f auditFilter) apply(q *gorm.DB) *gorm.DB {
	if f.action != "" {
		q = q.Where("action = ?", f.action)
	}
	if f.entity != "" {
		q = q.Where("entity = ?", f.entity)
	}
	if f.userID != 0 {
		q = q.Where("user_id = ?", f.userID)
	}
	if !f.from.IsZero() {
		q = q.Where("created_at >= ?", f.from)
	}
	if !f.to.IsZero() {
		q = q.Where("created_at < ?", f.to)
	}
	return q
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	filter := auditFilterFrom(c)
	db := h.db.WithContext(c.Request.Context())

	var total int64
	if err := filter.apply(db.Model(&models.AuditLog{})).Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := filter.apply(db.Model(&models.AuditLog{})).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
