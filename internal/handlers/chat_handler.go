package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/barberia-premium/booking-api/internal/domain/appointment"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// ChatHandler is the scripted storefront assistant. It matches keywords
// against a fixed intent table and answers from live data; there is no
// model behind it.
type ChatHandler struct {
	db       *gorm.DB
	shopName string
}

func NewChatHandler(db *gorm.DB, shopName string) *ChatHandler {
	return &ChatHandler{db: db, shopName: shopName}
}

type ChatRequest struct {
	Message string `json:"message" binding:"required,max=500"`
}

var spanishDayNames = map[string]string{
	"MONDAY":    "Lunes",
	"TUESDAY":   "Martes",
	"WEDNESDAY": "Miércoles",
	"THURSDAY":  "Jueves",
	"FRIDAY":    "Viernes",
	"SATURDAY":  "Sábado",
	"SUNDAY":    "Domingo",
}

func (h *ChatHandler) Ask(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Mensaje inválido.")
		return
	}

	msg := strings.ToLower(req.Message)

	var reply string
	switch {
	case containsAny(msg, "precio", "cuesta", "cuánto", "cuanto", "servicio", "corte"):
		reply = h.servicesReply()
	case containsAny(msg, "horario", "hora", "abren", "cierran", "abierto"):
		reply = h.hoursReply()
	case containsAny(msg, "reservar", "reserva", "cita", "agendar", "turno"):
		reply = "Puedes reservar desde la sección de barberos: elige tu barbero, el servicio y verás los horarios libres del día."
	case containsAny(msg, "cancelar", "cancelación", "cancelacion"):
		reply = "Puedes cancelar tus citas pendientes o confirmadas desde \"Mis citas\" en tu perfil."
	case containsAny(msg, "hola", "buenas", "buenos días", "buenos dias"):
		reply = fmt.Sprintf("¡Hola! Bienvenido a %s. Puedo contarte sobre servicios, precios, horarios o cómo reservar.", h.shopName)
	default:
		reply = "No entendí tu pregunta. Puedo ayudarte con servicios, precios, horarios y reservas."
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func containsAny(msg string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}

func (h *ChatHandler) servicesReply() string {
	var services []models.Service
	if err := h.db.
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&services).Error; err != nil || len(services) == 0 {
		return "Por el momento no tengo la lista de servicios, intenta más tarde."
	}

	var b strings.Builder
	b.WriteString("Estos son nuestros servicios:\n")
	for _, s := range services {
		fmt.Fprintf(&b, "- %s: $%.2f (%d min)\n", s.Name, s.Price, s.DurationMin)
	}
	return b.String()
}

// hoursReply summarizes the week as the union of every barber's template.
func (h *ChatHandler) hoursReply() string {
	var rules []models.AvailabilityRule
	if err := h.db.
		Where("is_available = ?", true).
		Find(&rules).Error; err != nil || len(rules) == 0 {
		return "Aún no tenemos horarios publicados."
	}

	type window struct{ open, close string }
	week := make(map[string]window)
	for _, r := range rules {
		w, ok := week[r.DayOfWeek]
		if !ok {
			week[r.DayOfWeek] = window{open: r.StartTime, close: r.EndTime}
			continue
		}
		if r.StartTime < w.open {
			w.open = r.StartTime
		}
		if r.EndTime > w.close {
			w.close = r.EndTime
		}
		week[r.DayOfWeek] = w
	}

	var b strings.Builder
	b.WriteString("Nuestros horarios:\n")
	for _, day := range domain.DaysOfWeek {
		if w, ok := week[day]; ok {
			fmt.Fprintf(&b, "- %s: %s a %s\n", spanishDayNames[day], w.open, w.close)
		}
	}
	return b.String()
}
