package handler

import (
	"errors"
	"net/http"

	"vibegadget/accounts-service/internal/app/accounts/entity"
	"vibegadget/accounts-service/internal/app/accounts/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type NotificationHandler struct {
	notificationService service.NotificationServiceInterface
	validator           *validator.Validate
}

func NewNotificationHandler(notificationService service.NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		validator:           validator.New(),
	}
}

// CreateNotification создает уведомление (админ)
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req entity.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	notification, err := h.notificationService.CreateNotification(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTarget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification target"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, notification)
}

// GetNotifications возвращает ленту уведомлений текущего пользователя
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notifications, err := h.notificationService.GetNotificationsForViewer(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}

	c.JSON(http.StatusOK, entity.NotificationListResponse{
		Notifications: notifications,
		Total:         len(notifications),
	})
}
