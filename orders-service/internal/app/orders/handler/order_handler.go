package handler

import (
	"errors"
	"net/http"

	"vibegadget/orders-service/internal/app/orders/entity"
	"vibegadget/orders-service/internal/app/orders/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// OrderHandler обрабатывает HTTP запросы для заказов с использованием Gin
type OrderHandler struct {
	orderService service.OrderServiceInterface
	validator    *validator.Validate
}

// NewOrderHandler создает новый обработчик заказов
func NewOrderHandler(orderService service.OrderServiceInterface) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validator:    validator.New(),
	}
}

// Checkout обрабатывает POST /orders
// Оформляет заказ из серверной корзины. Доступно и гостям:
// гостевой заказ сохраняется с user_id = uuid.Nil.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, _, exists := currentUser(c)
	if !exists {
		userID = uuid.Nil
	}

	owner, ok := ownerKey(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Device-ID header required for guest checkout"})
		return
	}

	var req entity.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), userID, owner, &req)
	if err != nil {
		if errors.Is(err, service.ErrCartEmpty) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, buildOrderResponse(order))
}

// GetOrder обрабатывает GET /orders/{id}
// Пользователь видит только свои заказы, администратор - любые
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, isAdmin, exists := currentUser(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID, userID, isAdmin)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order"})
		return
	}

	c.JSON(http.StatusOK, buildOrderResponse(order))
}

// GetUserOrders обрабатывает GET /orders
// Получает все заказы текущего пользователя
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	userID, _, exists := currentUser(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, err := h.orderService.GetUserOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}

// GetAllOrders обрабатывает GET /orders/all (только администратор)
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.orderService.GetAllOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}

// UpdateStatus обрабатывает PATCH /orders/{id}/status (только администратор)
// Переход проверяется по настроенной политике, смена попадает в журнал
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	userID, _, exists := currentUser(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req entity.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, req.Status, userID.String())
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidStatusTransition) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     order.ID,
		"status": order.Status,
	})
}

// UpdateTracking обрабатывает PATCH /orders/{id}/tracking (только администратор)
func (h *OrderHandler) UpdateTracking(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req entity.UpdateTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	if err := h.orderService.SetTracking(c.Request.Context(), orderID, req.TrackingID); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tracking"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Tracking updated",
	})
}

// GetTracking обрабатывает GET /orders/{id}/tracking
// Возвращает пять контрольных точек доставки, вычисленных из статуса
func (h *OrderHandler) GetTracking(c *gin.Context) {
	userID, isAdmin, exists := currentUser(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	tracking, err := h.orderService.GetTracking(c.Request.Context(), orderID, userID, isAdmin)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get tracking"})
		return
	}

	c.JSON(http.StatusOK, tracking)
}

// GetStatusHistory обрабатывает GET /orders/{id}/history
func (h *OrderHandler) GetStatusHistory(c *gin.Context) {
	userID, isAdmin, exists := currentUser(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	history, err := h.orderService.GetStatusHistory(c.Request.Context(), orderID, userID, isAdmin)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get status history"})
		return
	}

	c.JSON(http.StatusOK, entity.StatusHistoryResponse{
		OrderID: orderID,
		History: history,
	})
}

// buildOrderResponse формирует ответ с информацией о заказе
func buildOrderResponse(order *entity.OrderWithItems) entity.OrderResponse {
	items := make([]entity.ItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = entity.ItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Name:       item.Name,
			Image:      item.Image,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.UnitPrice * int64(item.Quantity),
		}
	}

	return entity.OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		Subtotal:        order.Subtotal,
		DeliveryFee:     order.DeliveryFee,
		Total:           order.Total,
		Status:          order.Status,
		PaymentMethod:   order.PaymentMethod,
		RecipientName:   order.RecipientName,
		ShippingAddress: order.ShippingAddress,
		Phone:           order.Phone,
		TrackingID:      order.TrackingID,
		CreatedAt:       order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Items:           items,
	}
}

// formatValidationError форматирует ошибки валидации
func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
