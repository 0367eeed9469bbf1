package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberia-premium/booking-api/internal/cache"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/httpresp"
	"github.com/barberia-premium/booking-api/internal/models"
	ucAppointment "github.com/barberia-premium/booking-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the unauthenticated storefront endpoints: the
// barber roster, their services, the slot grid and the gallery.
type PublicHandler struct {
	db *gorm.DB
	tz string

	availabilityUC *ucAppointment.GetAvailability
	slotCache      *cache.SlotCache
}

func NewPublicHandler(
	db *gorm.DB,
	tz string,
	availabilityUC *ucAppointment.GetAvailability,
	slotCache *cache.SlotCache,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		tz:             tz,
		availabilityUC: availabilityUC,
		slotCache:      slotCache,
	}
}

// ======================================================
// BARBERS
// ======================================================

type barberListItem struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Bio       string  `json:"bio"`
	ImageURL  string  `json:"image_url"`
	AvgRating float64 `json:"avg_rating"`
	Reviews   int64   `json:"reviews"`
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.
		Preload("User").
		Where("is_active = ?", true).
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Error al listar barberos.")
		return
	}

	items := make([]barberListItem, 0, len(barbers))
	for _, b := range barbers {
		item := barberListItem{
			ID:       b.ID,
			Name:     b.User.Name,
			Bio:      b.Bio,
			ImageURL: b.User.ImageURL,
		}

		var stats struct {
			Avg   float64
			Count int64
		}
		h.db.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("barber_id = ?", b.ID).
			Scan(&stats)
		item.AvgRating = stats.Avg
		item.Reviews = stats.Count

		items = append(items, item)
	}

	httpresp.List(c, items)
}

func (h *PublicHandler) ListBarberServices(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var barber models.Barber
	if err := h.db.Where("id = ? AND is_active = ?", barberID, true).First(&barber).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar servicios.")
		return
	}

	httpresp.List(c, services)
}

// ======================================================
// SLOTS
// ======================================================

func (h *PublicHandler) GetSlots(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Servicio inválido.")
		return
	}

	dateStr := c.Query("date")
	date, err := parseDateInShop(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	if slots, ok := h.slotCache.Get(c.Request.Context(), uint(barberID), uint(serviceID), dateStr); ok {
		c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": slots})
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		BarberID:  uint(barberID),
		ServiceID: uint(serviceID),
		Date:      date,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, httperr.CodeBarberNotFound):
			httperr.NotFound(c, httperr.CodeBarberNotFound, "Barbero no encontrado.")
		case httperr.IsBusiness(err, httperr.CodeServiceNotFound):
			httperr.NotFound(c, httperr.CodeServiceNotFound, "Servicio no encontrado.")
		default:
			httperr.Internal(c, "failed_to_compute_slots", "Error al calcular horarios.")
		}
		return
	}

	h.slotCache.Set(c.Request.Context(), uint(barberID), uint(serviceID), dateStr, slots)

	c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": slots})
}

// ======================================================
// GALLERY
// ======================================================

func (h *PublicHandler) ListGallery(c *gin.Context) {
	var items []models.GalleryItem
	if err := h.db.
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_gallery", "Error al listar la galería.")
		return
	}

	httpresp.List(c, items)
}
