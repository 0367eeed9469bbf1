package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberia-premium/booking-api/internal/audit"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/middleware"
	"github.com/barberia-premium/booking-api/internal/models"
	"github.com/barberia-premium/booking-api/internal/storage"
)

// ======================================================
// HANDLER
// ======================================================

type GalleryHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	uploader *storage.Uploader
}

func NewGalleryHandler(db *gorm.DB, audit *audit.Dispatcher, uploader *storage.Uploader) *GalleryHandler {
	return &GalleryHandler{db: db, audit: audit, uploader: uploader}
}

// ======================================================
// REQUESTS
// ======================================================

type GalleryItemRequest struct {
	MediaURL    string `json:"media_url" binding:"required"`
	MediaType   string `json:"media_type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ======================================================
// HANDLERS
// ======================================================

// UploadImage stores a photo and returns the URL. The client follows up
// with Create to publish it with a title.
func (h *GalleryHandler) UploadImage(c *gin.Context) {
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

	url, err := h.uploader.UploadImage(c.Request.Context(), "gallery", data)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_image", "Error al subir la imagen.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"media_url": url})
}

func (h *GalleryHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req GalleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	mediaType := req.MediaType
	if mediaType == "" {
		mediaType = models.MediaTypePhoto
	}
	if mediaType != models.MediaTypePhoto && mediaType != models.MediaTypeVideo {
		httperr.BadRequest(c, "invalid_media_type", "Tipo de medio inválido.")
		return
	}

	item := models.GalleryItem{
		MediaURL:    req.MediaURL,
		MediaType:   mediaType,
		Title:       req.Title,
		Description: req.Description,
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_gallery_item", "Error al crear el elemento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "gallery_item_created",
		Entity:   "gallery_item",
		EntityID: &item.ID,
	})

	c.JSON(http.StatusCreated, item)
}

func (h *GalleryHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var item models.GalleryItem
	if err := h.db.First(&item, id).Error; err != nil {
		httperr.NotFound(c, "gallery_item_not_found", "Elemento no encontrado.")
		return
	}

	var req GalleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	item.MediaURL = req.MediaURL
	if req.MediaType != "" {
		item.MediaType = req.MediaType
	}
	item.Title = req.Title
	item.Description = req.Description

	if err := h.db.Save(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_gallery_item", "Error al actualizar el elemento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "gallery_item_updated",
		Entity:   "gallery_item",
		EntityID: &item.ID,
	})

	c.JSON(http.StatusOK, item)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var item models.GalleryItem
	if err := h.db.First(&item, id).Error; err != nil {
		httperr.NotFound(c, "gallery_item_not_found", "Elemento no encontrado.")
		return
	}

	if err := h.db.Delete(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_gallery_item", "Error al eliminar el elemento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "gallery_item_deleted",
		Entity:   "gallery_item",
		EntityID: &item.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
