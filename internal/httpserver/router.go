package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipmart-be/internal/logger"
	"shipmart-be/internal/metrics"
	"shipmart-be/internal/middleware"
)

func buildRouter(m *Manager, reg *metrics.Registry) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		logger.RequestIDMiddleware(),
		logger.LoggingMiddleware(),
		middleware.RateLimitMiddleware(),
	)

	router.GET("/healthz", healthHandler)
	router.GET("/metrics", gin.WrapH(reg.Handler()))

	api := router.Group("/api/orders/:orderID/correction")
	{
		api.POST("", openCorrection(m))
		api.GET("", getCorrection(m))
		api.PATCH("/items/:itemID", editItem(m))
		api.DELETE("/items/:itemID", removeItem(m))
		api.POST("/confirm", confirmCorrection(m))
		api.POST("/leave", leaveCorrection(m))
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
