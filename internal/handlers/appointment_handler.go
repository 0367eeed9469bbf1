package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberia-premium/booking-api/internal/cache"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/httpresp"
	"github.com/barberia-premium/booking-api/internal/middleware"
	"github.com/barberia-premium/booking-api/internal/models"
	ucAppointment "github.com/barberia-premium/booking-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB
	tz string

	createUC   *ucAppointment.CreateAppointment
	confirmUC  *ucAppointment.ConfirmAppointment
	completeUC *ucAppointment.CompleteAppointment
	cancelUC   *ucAppointment.CancelAppointment
	agendaUC   *ucAppointment.ListAgenda

	slotCache *cache.SlotCache
}

func NewAppointmentHandler(
	db *gorm.DB,
	tz string,
	createUC *ucAppointment.CreateAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	agendaUC *ucAppointment.ListAgenda,
	slotCache *cache.SlotCache,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:         db,
		tz:         tz,
		createUC:   createUC,
		confirmUC:  confirmUC,
		completeUC: completeUC,
		cancelUC:   cancelUC,
		agendaUC:   agendaUC,
		slotCache:  slotCache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:MM
	Notes     string `json:"notes"`
}

// ======================================================
// CLIENT
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:  clientID,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	h.slotCache.InvalidateBarber(c.Request.Context(), ap.BarberID)

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var aps []models.Appointment
	if err := h.db.
		Preload("Barber.User").
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("start_time DESC").
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar citas.")
		return
	}

	httpresp.List(c, aps)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	actor := ucAppointment.Actor{UserID: userID, Role: role}
	if role == models.RoleBarber {
		barber, err := barberForUser(h.db, userID)
		if err != nil {
			httperr.NotFound(c, "barber_not_found", "Perfil de barbero no encontrado.")
			return
		}
		actor.BarberID = barber.ID
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), actor, uint(id))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, httperr.CodeAppointmentNotFound):
			httperr.NotFound(c, httperr.CodeAppointmentNotFound, "Cita no encontrada.")
		case httperr.IsBusiness(err, "forbidden"):
			httperr.Forbidden(c, "forbidden", "No puedes cancelar esta cita.")
		case httperr.IsBusiness(err, httperr.CodeInvalidState):
			httperr.BadRequest(c, httperr.CodeInvalidState, "La cita no puede ser cancelada.")
		default:
			httperr.Internal(c, "failed_to_cancel", "Error al cancelar la cita.")
		}
		return
	}

	h.slotCache.InvalidateBarber(c.Request.Context(), ap.BarberID)

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// BARBER AGENDA
// ======================================================

func (h *AppointmentHandler) AgendaByDate(c *gin.Context) {
	barber, ok := h.requireBarber(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Fecha obligatoria.")
		return
	}

	date, err := parseDateInShop(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	items, err := h.agendaUC.ByDate(c.Request.Context(), barber.ID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_agenda", "Error al listar la agenda.")
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *AppointmentHandler) AgendaByMonth(c *gin.Context) {
	barber, ok := h.requireBarber(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Año inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mes inválido.")
		return
	}

	items, err := h.agendaUC.ByMonth(c.Request.Context(), barber.ID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_agenda", "Error al listar la agenda.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": items,
	})
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, func(barberID, userID, appointmentID uint) (*models.Appointment, error) {
		return h.confirmUC.Execute(c.Request.Context(), barberID, userID, appointmentID)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(barberID, userID, appointmentID uint) (*models.Appointment, error) {
		return h.completeUC.Execute(c.Request.Context(), barberID, userID, appointmentID)
	})
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	run func(barberID, userID, appointmentID uint) (*models.Appointment, error),
) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	barber, ok := h.requireBarber(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := run(barber.ID, userID, uint(id))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, httperr.CodeAppointmentNotFound):
			httperr.NotFound(c, httperr.CodeAppointmentNotFound, "Cita no encontrada.")
		case httperr.IsBusiness(err, httperr.CodeInvalidState):
			httperr.BadRequest(c, httperr.CodeInvalidState, "Transición de estado inválida.")
		default:
			httperr.Internal(c, "failed_to_update_appointment", "Error al actualizar la cita.")
		}
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) requireBarber(c *gin.Context) (*models.Barber, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	barber, err := barberForUser(h.db, userID)
	if err != nil {
		httperr.NotFound(c, "barber_not_found", "Perfil de barbero no encontrado.")
		return nil, false
	}
	return barber, true
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapCreateErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha u hora inválida.")
	case httperr.IsBusiness(err, httperr.CodeTooSoon):
		httperr.BadRequest(c, httperr.CodeTooSoon, "El horario requiere más anticipación.")
	case httperr.IsBusiness(err, httperr.CodeBarberNotFound):
		httperr.BadRequest(c, httperr.CodeBarberNotFound, "Barbero no encontrado.")
	case httperr.IsBusiness(err, httperr.CodeServiceNotFound):
		httperr.BadRequest(c, httperr.CodeServiceNotFound, "Servicio no encontrado.")
	case httperr.IsBusiness(err, httperr.CodeSlotUnavailable):
		httperr.Conflict(c, httperr.CodeSlotUnavailable, "El horario ya no está disponible.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Error al crear la cita.")
	}
}
