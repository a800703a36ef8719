package handler

import (
	"net/http"
	"strings"

	"vibegadget/catalog-service/internal/app/catalog/entity"
	"vibegadget/catalog-service/internal/app/catalog/service"

	"github.com/gin-gonic/gin"
)

// Максимальный размер загружаемого изображения - 10 MB
const maxUploadSize = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// UploadHandler принимает изображения и отдает их на внешний хостинг
type UploadHandler struct {
	catalogService service.CatalogServiceInterface
}

func NewUploadHandler(catalogService service.CatalogServiceInterface) *UploadHandler {
	return &UploadHandler{catalogService: catalogService}
}

// UploadImage обрабатывает POST /catalog/uploads (multipart, поле "image")
// Возвращает публичный URL, клиент кладет его в карточку товара/баннера/отзыва
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is too large (max 10 MB)"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[strings.ToLower(contentType)] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.catalogService.UploadImage(c.Request.Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusCreated, entity.UploadResponse{URL: url})
}
