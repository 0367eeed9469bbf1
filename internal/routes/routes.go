package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/barberia-premium/booking-api/internal/audit"
	"github.com/barberia-premium/booking-api/internal/cache"
	"github.com/barberia-premium/booking-api/internal/config"
	"github.com/barberia-premium/booking-api/internal/handlers"
	infraRepo "github.com/barberia-premium/booking-api/internal/infra/repository"
	"github.com/barberia-premium/booking-api/internal/middleware"
	"github.com/barberia-premium/booking-api/internal/models"
	"github.com/barberia-premium/booking-api/internal/storage"
	ucAppointment "github.com/barberia-premium/booking-api/internal/usecase/appointment"
	ucSchedule "github.com/barberia-premium/booking-api/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	slotCache := cache.NewSlotCache(cfg.RedisAddr)
	uploader := storage.NewUploader(cfg)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		cfg.ShopTimezone,
		cfg.MinAdvanceMinutes,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.ShopTimezone,
		cfg.MinAdvanceMinutes,
		cfg.BookingAutoConfirm,
	)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.ShopTimezone,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.ShopTimezone,
	)

	agendaUC := ucAppointment.NewListAgenda(appointmentRepo, cfg.ShopTimezone)

	// ======================================================
	// USE CASES — SCHEDULE
	// ======================================================
	replaceWeekUC := ucSchedule.NewReplaceWeek(scheduleRepo, auditDispatcher)
	daysOffUC := ucSchedule.NewManageDaysOff(scheduleRepo, auditDispatcher, cfg.ShopTimezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	qrHandler := handlers.NewQRHandler(cfg.FrontendBaseURL)

	publicHandler := handlers.NewPublicHandler(db, cfg.ShopTimezone, availabilityUC, slotCache)
	chatHandler := handlers.NewChatHandler(db, cfg.ShopName)
	reviewHandler := handlers.NewReviewHandler(db, auditDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		cfg.ShopTimezone,
		createAppointmentUC,
		confirmAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		agendaUC,
		slotCache,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(db, replaceWeekUC, daysOffUC, slotCache)

	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	barberAdminHandler := handlers.NewBarberAdminHandler(db, auditDispatcher, uploader)
	galleryHandler := handlers.NewGalleryHandler(db, auditDispatcher, uploader)
	accountingHandler := handlers.NewAccountingHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/barbers", publicHandler.ListBarbers)
		api.GET("/barbers/:id/services", publicHandler.ListBarberServices)
		api.GET("/barbers/:id/slots", publicHandler.GetSlots)
		api.GET("/barbers/:id/reviews", reviewHandler.ListForBarber)
		api.GET("/gallery", publicHandler.ListGallery)
		api.POST("/chat", chatHandler.Ask)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/qr", qrHandler.Generate)

			// ------------------------------
			// CLIENT
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListMine)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.POST("/reviews", reviewHandler.Create)

			// ------------------------------
			// BARBER
			// ------------------------------
			barber := secured.Group("/me")
			barber.Use(middleware.RequireRole(models.RoleBarber, models.RoleAdmin))
			{
				barber.GET("/agenda", appointmentHandler.AgendaByDate)
				barber.GET("/agenda/month", appointmentHandler.AgendaByMonth)
				barber.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
				barber.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
				barber.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

				barber.GET("/availability", availabilityHandler.Get)
				barber.PUT("/availability", availabilityHandler.Update)

				barber.GET("/days-off", availabilityHandler.ListDaysOff)
				barber.POST("/days-off", availabilityHandler.AddDayOff)
				barber.DELETE("/days-off/:id", availabilityHandler.RemoveDayOff)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/services", serviceHandler.List)
				admin.POST("/services", serviceHandler.Create)
				admin.PATCH("/services/:id", serviceHandler.Update)
				admin.DELETE("/services/:id", serviceHandler.Deactivate)

				admin.GET("/barbers", barberAdminHandler.List)
				admin.POST("/barbers", barberAdminHandler.Create)
				admin.PATCH("/barbers/:id", barberAdminHandler.Update)
				admin.DELETE("/barbers/:id", barberAdminHandler.Deactivate)
				admin.POST("/barbers/:id/image", barberAdminHandler.UploadImage)

				admin.POST("/gallery/upload", galleryHandler.UploadImage)
				admin.POST("/gallery", galleryHandler.Create)
				admin.PATCH("/gallery/:id", galleryHandler.Update)
				admin.DELETE("/gallery/:id", galleryHandler.Delete)

				admin.GET("/expenses", accountingHandler.ListExpenses)
				admin.POST("/expenses", accountingHandler.CreateExpense)
				admin.DELETE("/expenses/:id", accountingHandler.DeleteExpense)

				admin.GET("/invoices", accountingHandler.ListInvoices)
				admin.POST("/invoices", accountingHandler.CreateInvoice)
				admin.PATCH("/invoices/:id/pay", accountingHandler.MarkInvoicePaid)

				admin.GET("/barber-payments", accountingHandler.ListBarberPayments)
				admin.POST("/barber-payments", accountingHandler.CreateBarberPayment)
				admin.PATCH("/barber-payments/:id/pay", accountingHandler.MarkBarberPaymentPaid)

				admin.GET("/accounting/summary", accountingHandler.Summary)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
