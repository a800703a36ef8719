package handler

import (
	"errors"
	"net/http"

	"vibegadget/catalog-service/internal/app/catalog/entity"
	"vibegadget/catalog-service/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CatalogHandler обрабатывает HTTP запросы каталога
type CatalogHandler struct {
	catalogService service.CatalogServiceInterface
	validator      *validator.Validate
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(catalogService service.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// ListProducts обрабатывает GET /catalog/products?category=...
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	category := c.Query("category")

	products, err := h.catalogService.ListProducts(c.Request.Context(), category)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// GetProduct обрабатывает GET /catalog/products/:id
// Отсутствующий товар - это пустое состояние витрины, а не сбой
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListCategories обрабатывает GET /catalog/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalogService.ListCategories()})
}

// CreateProduct обрабатывает POST /catalog/products (админ)
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct обрабатывает PUT /catalog/products/:id (админ)
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req entity.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if errors.Is(err, service.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct обрабатывает DELETE /catalog/products/:id (админ)
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Product deleted successfully"})
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
