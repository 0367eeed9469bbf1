package handlers

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

// QRHandler genera códigos QR para compartir la barbería o el perfil
// de un barbero concreto.
type QRHandler struct {
	baseURL string
}

func NewQRHandler(baseURL string) *QRHandler {
	return &QRHandler{baseURL: baseURL}
}

// Generate devuelve un QR en data-URL apuntando a la página pública.
// Con type=barber y barber_id apunta al perfil de ese barbero.
func (h *QRHandler) Generate(c *gin.Context) {
	url := h.baseURL
	if c.Query("type") == "barber" {
		if barberID := c.Query("barber_id"); barberID != "" {
			url = fmt.Sprintf("%s/barberos/%s", h.baseURL, barberID)
		}
	}

	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar código QR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"qr_code": "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		"url":     url,
	})
}
