package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func qrRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/qr", NewQRHandler("https://barberia.example").Generate)
	return r
}

func TestQRGenerate_DefaultPointsAtTheSite(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/qr", nil)

	qrRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://barberia.example", body["url"])
	assert.True(t, strings.HasPrefix(body["qr_code"], "data:image/png;base64,"))
}

func TestQRGenerate_BarberProfile(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/qr?type=barber&barber_id=7", nil)

	qrRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://barberia.example/barberos/7", body["url"])
}
