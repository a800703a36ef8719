package handler

import (
	"net/http"

	"vibegadget/pkg/logger"
	"vibegadget/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes настраивает маршруты Orders Service.
// Корзина и оформление доступны гостям (X-Device-ID),
// просмотр заказов требует токен, управление статусами - роль admin.
func SetupRoutes(
	orderHandler *OrderHandler,
	cartHandler *CartHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("orders-service"))
	router.Use(cors.Default())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "orders-service",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Корзина: пользователь или гость с X-Device-ID
	cart := router.Group("/cart")
	cart.Use(authMiddleware.OptionalAuthenticate())
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PATCH("/items/:productID", cartHandler.UpdateItem)
		cart.DELETE("/items/:productID", cartHandler.RemoveItem)
	}

	orders := router.Group("/orders")
	{
		// Оформление доступно гостям
		orders.POST("", authMiddleware.OptionalAuthenticate(), orderHandler.Checkout)

		// Просмотр требует токен
		authed := orders.Group("")
		authed.Use(authMiddleware.Authenticate())
		{
			authed.GET("", orderHandler.GetUserOrders)
			authed.GET("/:id", orderHandler.GetOrder)
			authed.GET("/:id/tracking", orderHandler.GetTracking)
			authed.GET("/:id/history", orderHandler.GetStatusHistory)
		}

		// Административные операции
		admin := orders.Group("")
		admin.Use(authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"))
		{
			admin.GET("/all", orderHandler.GetAllOrders)
			admin.PATCH("/:id/status", orderHandler.UpdateStatus)
			admin.PATCH("/:id/tracking", orderHandler.UpdateTracking)
		}
	}

	return router
}
