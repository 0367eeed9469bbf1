package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberia-premium/booking-api/internal/audit"
	domain "github.com/barberia-premium/booking-api/internal/domain/appointment"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/httpresp"
	"github.com/barberia-premium/booking-api/internal/middleware"
	"github.com/barberia-premium/booking-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type ReviewHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewReviewHandler(db *gorm.DB, audit *audit.Dispatcher) *ReviewHandler {
	return &ReviewHandler{db: db, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type ReviewRequest struct {
	AppointmentID uint   `json:"appointment_id" binding:"required"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment" binding:"max=500"`
}

// ======================================================
// HANDLERS
// ======================================================

// Create lets a client review one of their own completed appointments.
// One review per appointment.
func (h *ReviewHandler) Create(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, req.AppointmentID).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Cita no encontrada.")
		return
	}

	if ap.ClientID != clientID {
		httperr.Forbidden(c, "forbidden", "Solo puedes reseñar tus propias citas.")
		return
	}

	if domain.Status(ap.Status) != domain.StatusCompleted {
		httperr.BadRequest(c, "appointment_not_completed", "La cita aún no fue completada.")
		return
	}

	var count int64
	h.db.Model(&models.Review{}).Where("appointment_id = ?", ap.ID).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "review_already_exists", "Esta cita ya tiene una reseña.")
		return
	}

	review := models.Review{
		BarberID:      ap.BarberID,
		ClientID:      clientID,
		AppointmentID: ap.ID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}

	if err := h.db.Create(&review).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			httperr.Conflict(c, "review_already_exists", "Esta cita ya tiene una reseña.")
			return
		}
		httperr.Internal(c, "failed_to_create_review", "Error al crear la reseña.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &clientID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &review.ID,
	})

	c.JSON(http.StatusCreated, review)
}

// ListForBarber is public: the storefront shows each barber's reviews.
func (h *ReviewHandler) ListForBarber(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var reviews []models.Review
	if err := h.db.
		Preload("Client").
		Where("barber_id = ?", barberID).
		Order("created_at DESC").
		Limit(50).
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Error al listar reseñas.")
		return
	}

	httpresp.List(c, reviews)
}
