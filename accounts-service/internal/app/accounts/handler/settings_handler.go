package handler

import (
	"net/http"

	"vibegadget/accounts-service/internal/app/accounts/entity"
	"vibegadget/accounts-service/internal/app/accounts/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService service.SettingsServiceInterface
}

func NewSettingsHandler(settingsService service.SettingsServiceInterface) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetSettings возвращает настройки платформы (публично: флаги нужны клиенту до логина)
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings обновляет настройки платформы (админ)
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req entity.UpdatePlatformSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}
