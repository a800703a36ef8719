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

// CartHandler обрабатывает HTTP запросы корзины.
// Корзина доступна и гостям: владелец определяется по токену
// либо по заголовку X-Device-ID.
type CartHandler struct {
	cartService service.CartServiceInterface
	validator   *validator.Validate
}

// NewCartHandler создает новый обработчик корзины
func NewCartHandler(cartService service.CartServiceInterface) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// AddItem обрабатывает POST /cart/items
// Добавляет товар в корзину, при повторном добавлении количества складываются
func (h *CartHandler) AddItem(c *gin.Context) {
	owner, ok := ownerKey(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Device-ID header required for guest cart"})
		return
	}

	var req entity.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	items, err := h.cartService.AddItem(c.Request.Context(), owner, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found in catalog"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	c.JSON(http.StatusOK, buildCartResponse(items))
}

// UpdateItem обрабатывает PATCH /cart/items/{productID}
// Меняет количество позиции на delta, итог не опускается ниже 1
func (h *CartHandler) UpdateItem(c *gin.Context) {
	owner, ok := ownerKey(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Device-ID header required for guest cart"})
		return
	}

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req entity.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	items, err := h.cartService.UpdateItemQuantity(c.Request.Context(), owner, productID, req.Delta)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		return
	}

	c.JSON(http.StatusOK, buildCartResponse(items))
}

// RemoveItem обрабатывает DELETE /cart/items/{productID}
func (h *CartHandler) RemoveItem(c *gin.Context) {
	owner, ok := ownerKey(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Device-ID header required for guest cart"})
		return
	}

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	items, err := h.cartService.RemoveItem(c.Request.Context(), owner, productID)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
		return
	}

	c.JSON(http.StatusOK, buildCartResponse(items))
}

// GetCart обрабатывает GET /cart
// Возвращает позиции и расчет сумм по зафиксированным ценам
func (h *CartHandler) GetCart(c *gin.Context) {
	owner, ok := ownerKey(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Device-ID header required for guest cart"})
		return
	}

	items, err := h.cartService.GetItems(c.Request.Context(), owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart"})
		return
	}

	c.JSON(http.StatusOK, buildCartResponse(items))
}

// ClearCart обрабатывает DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	owner, ok := ownerKey(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Device-ID header required for guest cart"})
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), owner); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Cart cleared",
	})
}

// buildCartResponse формирует ответ с позициями и расчетом сумм
func buildCartResponse(items []entity.CartItem) entity.CartResponse {
	return entity.CartResponse{
		Items:       items,
		Subtotal:    service.Subtotal(items),
		DeliveryFee: service.DeliveryFee,
		Total:       service.Total(items),
	}
}
