package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vibegadget/pkg/logger"
	"vibegadget/pkg/metrics"
)

func SetupRoutes(
	profileHandler *ProfileHandler,
	notificationHandler *NotificationHandler,
	settingsHandler *SettingsHandler,
	geoHandler *GeoHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("accounts-service"))

	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "accounts-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	profile := router.Group("/profile")
	profile.Use(authMiddleware.Authenticate())
	{
		profile.GET("", profileHandler.GetProfile)
		profile.PUT("", profileHandler.UpdateProfile)
		profile.DELETE("", profileHandler.DeleteProfile)
	}

	profiles := router.Group("/profiles")
	profiles.Use(authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"))
	{
		profiles.GET("", profileHandler.ListProfiles)
		profiles.PATCH("/:id/ban", profileHandler.SetBanned)
		profiles.PATCH("/:id/role", profileHandler.SetRole)
	}

	notifications := router.Group("/notifications")
	notifications.Use(authMiddleware.Authenticate())
	{
		notifications.GET("", notificationHandler.GetNotifications)
		notifications.POST("", authMiddleware.RequireRole("admin"), notificationHandler.CreateNotification)
	}

	settings := router.Group("/settings")
	{
		settings.GET("/platform", settingsHandler.GetSettings)
		settings.PUT("/platform",
			authMiddleware.Authenticate(),
			authMiddleware.RequireRole("admin"),
			settingsHandler.UpdateSettings,
		)
	}

	router.GET("/geocode/reverse", geoHandler.ReverseGeocode)

	return router
}
