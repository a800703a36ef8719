package handler

import (
	"errors"
	"net/http"
	"strconv"

	"vibegadget/accounts-service/internal/app/accounts/entity"
	"vibegadget/accounts-service/internal/app/accounts/infrastructure"
	infrahttp "vibegadget/accounts-service/internal/app/accounts/infrastructure/http"

	"github.com/gin-gonic/gin"
)

type GeoHandler struct {
	geocodingClient infrastructure.GeocodingClient
}

func NewGeoHandler(geocodingClient infrastructure.GeocodingClient) *GeoHandler {
	return &GeoHandler{
		geocodingClient: geocodingClient,
	}
}

// ReverseGeocode возвращает название населенного пункта по координатам
func (h *GeoHandler) ReverseGeocode(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lat parameter"})
		return
	}

	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lon parameter"})
		return
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinates out of range"})
		return
	}

	locality, err := h.geocodingClient.ReverseGeocode(c.Request.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, infrahttp.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Geocoding service unavailable"})
		return
	}

	c.JSON(http.StatusOK, entity.GeocodeResponse{Locality: locality})
}
