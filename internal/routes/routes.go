package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	availabilityDomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	ucAvailability "github.com/BruksfildServices01/barbershop-booking/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
)

// Deps are the singletons built by main and shared by every route.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config

	// Store feeds availability reads; it is the repository itself or the
	// Redis cache wrapping it.
	Store       availabilityDomain.Store
	Invalidator availabilityDomain.Invalidator

	Audit   *audit.Dispatcher
	Metrics *metrics.BookingMetrics
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	scheduleRepo := infraRepo.NewAvailabilityGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	getAvailabilityUC := ucAvailability.NewGetAvailability(
		d.Store,
		bookingRepo,
		availabilityDomain.ParseFailurePolicy(d.Config.AvailabilityFailPolicy),
		d.Metrics,
	)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		getAvailabilityUC,
		d.Invalidator,
		d.Audit,
		d.Metrics,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, d.Invalidator, d.Audit, d.Metrics)
	completeBookingUC := ucBooking.NewCompleteBooking(bookingRepo, d.Invalidator, d.Audit, d.Metrics)
	noShowUC := ucBooking.NewMarkNoShow(bookingRepo, d.Invalidator, d.Audit, d.Metrics)

	lookupBookingUC := ucBooking.NewLookupBooking(bookingRepo)
	cancelByReferenceUC := ucBooking.NewCancelByReference(bookingRepo, d.Invalidator, d.Audit, d.Metrics)

	listByDateUC := ucBooking.NewListBookingsByDate(bookingRepo)
	listByMonthUC := ucBooking.NewListBookingsByMonth(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(
		d.DB,
		bookingRepo,
		getAvailabilityUC,
		createBookingUC,
		lookupBookingUC,
		cancelByReferenceUC,
	)

	bookingHandler := handlers.NewBookingHandler(
		listByDateUC,
		listByMonthUC,
		cancelBookingUC,
		completeBookingUC,
		noShowUC,
	)

	scheduleHandler := handlers.NewScheduleHandler(
		scheduleRepo,
		bookingRepo,
		bookingRepo,
		d.Invalidator,
		d.Audit,
	)

	meHandler := handlers.NewMeHandler(d.DB, bookingRepo)
	shopHandler := handlers.NewShopHandler(d.DB, d.Audit)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Audit)
	barberHandler := handlers.NewBarberHandler(d.DB, d.Invalidator, d.Audit)
	clientHandler := handlers.NewClientHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/shop", publicHandler.Shop)
			public.GET("/barbers", publicHandler.ListBarbers)
			public.GET("/services", publicHandler.ListServices)
			public.GET("/barbers/:id/availability", publicHandler.Availability)

			public.POST("/bookings", publicHandler.CreateBooking)
			public.GET("/bookings/:reference", publicHandler.GetBooking)
			public.POST("/bookings/:reference/cancel", publicHandler.CancelBooking)
		}

		// ------------------------------
		// BARBER PORTAL
		// ------------------------------
		me := api.Group("/me")
		me.Use(
			middleware.AuthMiddleware(d.Config),
			middleware.RequireRole(models.RoleBarber, models.RoleSuperadmin),
		)
		{
			me.GET("", meHandler.GetMe)

			me.GET("/availability", scheduleHandler.GetMine)
			me.PUT("/availability", scheduleHandler.UpdateMine)

			me.GET("/blocked-times", scheduleHandler.ListMineBlocked)
			me.POST("/blocked-times", scheduleHandler.CreateMineBlocked)
			me.DELETE("/blocked-times/:id", scheduleHandler.DeleteBlocked)

			me.GET("/bookings", bookingHandler.ListMineByDate)
			me.GET("/bookings/month", bookingHandler.ListMineByMonth)
			me.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
			me.PATCH("/bookings/:id/complete", bookingHandler.Complete)
			me.PATCH("/bookings/:id/no-show", bookingHandler.NoShow)
		}

		// ------------------------------
		// SUPERADMIN PORTAL
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(
			middleware.AuthMiddleware(d.Config),
			middleware.RequireRole(models.RoleSuperadmin),
		)
		{
			admin.GET("/shop", shopHandler.Get)
			admin.PATCH("/shop", shopHandler.Update)

			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)

			admin.GET("/barbers", barberHandler.List)
			admin.POST("/barbers", barberHandler.Create)
			admin.PATCH("/barbers/:id", barberHandler.Update)

			admin.GET("/barbers/:id/availability", scheduleHandler.GetForBarber)
			admin.PUT("/barbers/:id/availability", scheduleHandler.UpdateForBarber)
			admin.GET("/barbers/:id/blocked-times", scheduleHandler.ListBlockedForBarber)
			admin.POST("/barbers/:id/blocked-times", scheduleHandler.CreateBlockedForBarber)
			admin.DELETE("/blocked-times/:id", scheduleHandler.DeleteBlocked)

			admin.GET("/bookings", bookingHandler.ListByDate)
			admin.GET("/bookings/month", bookingHandler.ListByMonth)
			admin.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
			admin.PATCH("/bookings/:id/complete", bookingHandler.Complete)
			admin.PATCH("/bookings/:id/no-show", bookingHandler.NoShow)

			admin.GET("/clients", clientHandler.List)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
