package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberia-premium/booking-api/internal/cache"
	domain "github.com/barberia-premium/booking-api/internal/domain/appointment"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/middleware"
	"github.com/barberia-premium/booking-api/internal/models"
	ucSchedule "github.com/barberia-premium/booking-api/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	db          *gorm.DB
	replaceWeek *ucSchedule.ReplaceWeek
	daysOff     *ucSchedule.ManageDaysOff
	slotCache   *cache.SlotCache
}

func NewAvailabilityHandler(
	db *gorm.DB,
	replaceWeek *ucSchedule.ReplaceWeek,
	daysOff *ucSchedule.ManageDaysOff,
	slotCache *cache.SlotCache,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		db:          db,
		replaceWeek: replaceWeek,
		daysOff:     daysOff,
		slotCache:   slotCache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AvailabilityUpdateRequest struct {
	Days []ucSchedule.DayConfig `json:"days" binding:"required"`
}

type DayOffRequest struct {
	Date   string `json:"date" binding:"required"` // YYYY-MM-DD
	Reason string `json:"reason"`
}

// ======================================================
// WEEKLY TEMPLATE
// ======================================================

func (h *AvailabilityHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	barber, err := barberForUser(h.db, userID)
	if err != nil {
		httperr.NotFound(c, "barber_not_found", "Perfil de barbero no encontrado.")
		return
	}

	var rules []models.AvailabilityRule
	if err := h.db.
		Where("barber_id = ?", barber.ID).
		Find(&rules).Error; err != nil {
		httperr.Internal(c, "failed_to_get_availability", "Error al obtener disponibilidad.")
		return
	}

	// Monday-first calendar order, regardless of insertion order.
	sort.Slice(rules, func(i, j int) bool {
		return dayIndex(rules[i].DayOfWeek) < dayIndex(rules[j].DayOfWeek)
	})

	c.JSON(http.StatusOK, rules)
}

func dayIndex(day string) int {
	for i, d := range domain.DaysOfWeek {
		if d == day {
			return i
		}
	}
	return len(domain.DaysOfWeek)
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	barber, err := barberForUser(h.db, userID)
	if err != nil {
		httperr.NotFound(c, "barber_not_found", "Perfil de barbero no encontrado.")
		return
	}

	var req AvailabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	rules, err := h.replaceWeek.Execute(c.Request.Context(), barber.ID, userID, req.Days)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_day_of_week"),
			httperr.IsBusiness(err, "duplicate_day_of_week"),
			httperr.IsBusiness(err, httperr.CodeInvalidTimeWindow):
			httperr.BadRequest(c, err.Error(), "Plantilla semanal inválida.")
		default:
			httperr.Internal(c, "failed_to_save_availability", "Error al guardar disponibilidad.")
		}
		return
	}

	h.slotCache.InvalidateBarber(c.Request.Context(), barber.ID)

	c.JSON(http.StatusOK, rules)
}

// ======================================================
// DAYS OFF
// ======================================================

func (h *AvailabilityHandler) ListDaysOff(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	barber, err := barberForUser(h.db, userID)
	if err != nil {
		httperr.NotFound(c, "barber_not_found", "Perfil de barbero no encontrado.")
		return
	}

	daysOff, err := h.daysOff.List(c.Request.Context(), barber.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_days_off", "Error al listar días libres.")
		return
	}

	c.JSON(http.StatusOK, daysOff)
}

func (h *AvailabilityHandler) AddDayOff(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	barber, err := barberForUser(h.db, userID)
	if err != nil {
		httperr.NotFound(c, "barber_not_found", "Perfil de barbero no encontrado.")
		return
	}

	var req DayOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	dayOff, err := h.daysOff.Add(c.Request.Context(), barber.ID, userID, req.Date, req.Reason)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_date"):
			httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		case httperr.IsBusiness(err, httperr.CodeDateInPast):
			httperr.BadRequest(c, httperr.CodeDateInPast, "La fecha ya pasó.")
		default:
			httperr.Internal(c, "failed_to_add_day_off", "Error al registrar día libre.")
		}
		return
	}

	h.slotCache.InvalidateBarber(c.Request.Context(), barber.ID)

	c.JSON(http.StatusCreated, dayOff)
}

func (h *AvailabilityHandler) RemoveDayOff(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	barber, err := barberForUser(h.db, userID)
	if err != nil {
		httperr.NotFound(c, "barber_not_found", "Perfil de barbero no encontrado.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if err := h.daysOff.Remove(c.Request.Context(), barber.ID, userID, uint(id)); err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "day_off_not_found", "Día libre no encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_remove_day_off", "Error al eliminar día libre.")
		return
	}

	h.slotCache.InvalidateBarber(c.Request.Context(), barber.ID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
