package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberia-premium/booking-api/internal/middleware"
	"github.com/barberia-premium/booking-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// barberForUser resolves the barber profile behind an authenticated user
// with role "barber". Shared by the schedule and agenda handlers.
func barberForUser(db *gorm.DB, userID uint) (*models.Barber, error) {
	var barber models.Barber
	if err := db.Where("user_id = ?", userID).First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}
