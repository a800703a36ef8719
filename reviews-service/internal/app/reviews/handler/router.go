package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vibegadget/pkg/logger"
	"vibegadget/pkg/metrics"
)

func SetupRoutes(reviewHandler *ReviewHandler, authMiddleware *AuthMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("reviews-service"))

	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "reviews-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	reviews := router.Group("/reviews")
	{
		// Чтение отзывов публичное: витрина показывает их без авторизации
		reviews.GET("/product/:product_id", reviewHandler.GetReviewsByProduct)

		authed := reviews.Group("")
		authed.Use(authMiddleware.Authenticate())
		{
			authed.POST("", reviewHandler.CreateReview)
			authed.GET("/me", reviewHandler.GetMyReviews)
		}

		reviews.GET("/:review_id", reviewHandler.GetReview)
	}

	return router
}
