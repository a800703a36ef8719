package handler

import (
	"net/http"

	"vibegadget/pkg/logger"
	"vibegadget/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes настраивает маршруты Catalog Service.
// Чтение каталога публичное, запись - только администратор.
func SetupRoutes(
	catalogHandler *CatalogHandler,
	bannerHandler *BannerHandler,
	uploadHandler *UploadHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("catalog-service"))
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "catalog-service",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	catalog := router.Group("/catalog")
	{
		// Публичная витрина
		catalog.GET("/products", catalogHandler.ListProducts)
		catalog.GET("/products/:id", catalogHandler.GetProduct)
		catalog.GET("/categories", catalogHandler.ListCategories)
		catalog.GET("/banners", bannerHandler.ListActiveBanners)

		// Административные операции
		admin := catalog.Group("")
		admin.Use(authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"))
		{
			admin.POST("/products", catalogHandler.CreateProduct)
			admin.PUT("/products/:id", catalogHandler.UpdateProduct)
			admin.DELETE("/products/:id", catalogHandler.DeleteProduct)

			admin.GET("/banners/all", bannerHandler.ListAllBanners)
			admin.POST("/banners", bannerHandler.CreateBanner)
			admin.PUT("/banners/:id", bannerHandler.UpdateBanner)
			admin.DELETE("/banners/:id", bannerHandler.DeleteBanner)

			admin.POST("/uploads", uploadHandler.UploadImage)
		}
	}

	return router
}
