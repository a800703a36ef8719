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

// BannerHandler обрабатывает HTTP запросы баннеров карусели
type BannerHandler struct {
	catalogService service.CatalogServiceInterface
	validator      *validator.Validate
}

func NewBannerHandler(catalogService service.CatalogServiceInterface) *BannerHandler {
	return &BannerHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// ListActiveBanners обрабатывает GET /catalog/banners - витрина
func (h *BannerHandler) ListActiveBanners(c *gin.Context) {
	banners, err := h.catalogService.ListActiveBanners(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get banners"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

// ListAllBanners обрабатывает GET /catalog/banners/all - админка
func (h *BannerHandler) ListAllBanners(c *gin.Context) {
	banners, err := h.catalogService.ListAllBanners(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get banners"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

// CreateBanner обрабатывает POST /catalog/banners (админ)
func (h *BannerHandler) CreateBanner(c *gin.Context) {
	var req entity.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	banner, err := h.catalogService.CreateBanner(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create banner"})
		return
	}

	c.JSON(http.StatusCreated, banner)
}

// UpdateBanner обрабатывает PUT /catalog/banners/:id (админ)
func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid banner ID"})
		return
	}

	var req entity.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	banner, err := h.catalogService.UpdateBanner(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrBannerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update banner"})
		return
	}

	c.JSON(http.StatusOK, banner)
}

// DeleteBanner обрабатывает DELETE /catalog/banners/:id (админ)
func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid banner ID"})
		return
	}

	if err := h.catalogService.DeleteBanner(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrBannerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Banner deleted successfully"})
}
