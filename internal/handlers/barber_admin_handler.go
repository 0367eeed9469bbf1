package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/barberia-premium/booking-api/internal/audit"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/middleware"
	"github.com/barberia-premium/booking-api/internal/models"
	"github.com/barberia-premium/booking-api/internal/storage"
	"github.com/barberia-premium/booking-api/internal/validators"
)

const maxUploadBytes = 10 << 20 // 10 MB

// ======================================================
// HANDLER
// ======================================================

// BarberAdminHandler lets an admin provision and manage barber accounts.
type BarberAdminHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	uploader *storage.Uploader
}

func NewBarberAdminHandler(db *gorm.DB, audit *audit.Dispatcher, uploader *storage.Uploader) *BarberAdminHandler {
	return &BarberAdminHandler{db: db, audit: audit, uploader: uploader}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBarberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
}

type UpdateBarberRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
	IsActive *bool  `json:"is_active"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *BarberAdminHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.Preload("User").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Error al listar barberos.")
		return
	}

	c.JSON(http.StatusOK, barbers)
}

// Create provisions the user account and the barber profile in one
// transaction so a failed profile insert never leaves an orphan login.
func (h *BarberAdminHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "Dominio de correo inválido.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "El correo ya está registrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Error interno.")
		return
	}

	var barber models.Barber
	err = h.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Name:         req.Name,
			Email:        email,
			PasswordHash: string(hashed),
			Phone:        req.Phone,
			Role:         models.RoleBarber,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		barber = models.Barber{
			UserID:   user.ID,
			Bio:      req.Bio,
			IsActive: true,
		}
		if err := tx.Create(&barber).Error; err != nil {
			return err
		}

		barber.User = user
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Error al crear el barbero.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "barber_created",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	c.JSON(http.StatusCreated, barber)
}

func (h *BarberAdminHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	barber, ok := h.loadBarber(c)
	if !ok {
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != "" {
		barber.User.Name = req.Name
	}
	if req.Phone != "" {
		barber.User.Phone = req.Phone
	}
	barber.Bio = req.Bio
	if req.IsActive != nil {
		barber.IsActive = *req.IsActive
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&barber.User).Error; err != nil {
			return err
		}
		return tx.Save(barber).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Error al actualizar el barbero.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "barber_updated",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	c.JSON(http.StatusOK, barber)
}

// Deactivate hides the barber from the storefront. Their appointment
// history stays intact.
func (h *BarberAdminHandler) Deactivate(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	barber, ok := h.loadBarber(c)
	if !ok {
		return
	}

	barber.IsActive = false
	if err := h.db.Save(barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Error al desactivar el barbero.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "barber_deactivated",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	c.JSON(http.StatusOK, barber)
}

func (h *BarberAdminHandler) UploadImage(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	barber, ok := h.loadBarber(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Imagen obligatoria.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Error al leer la imagen.")
		return
	}

	url, err := h.uploader.UploadImage(c.Request.Context(), "barbers", data)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_image", "Error al subir la imagen.")
		return
	}

	barber.User.ImageURL = url
	if err := h.db.Save(&barber.User).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Error al guardar la imagen.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "barber_image_updated",
		Entity:   "barber",
		EntityID: &barber.ID,
	})

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func (h *BarberAdminHandler) loadBarber(c *gin.Context) (*models.Barber, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return nil, false
	}

	var barber models.Barber
	if err := h.db.Preload("User").First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return nil, false
	}
	return &barber, true
}
