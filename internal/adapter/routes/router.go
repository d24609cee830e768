package routes

import (
	"github.com/gin-gonic/gin"

	handler "passwordSimBackend/internal/adapter/http"
)

func SetupRoutes(r *gin.Engine, h *handler.Handler) {
	api := r.Group("/api/v1")
	{
		api.POST("/attack", h.RunAttack)
		api.GET("/attacks/statistics", h.AttackStatistics)
		api.POST("/hashes", h.GenerateDigest)
		api.POST("/hashes/validate", h.ValidateDigest)
		api.GET("/samples", h.ListSamples)
		api.GET("/status", h.Status)

		devices := api.Group("/devices")
		{
			devices.POST("", h.CreateDevice)
			devices.GET("", h.ListDevices)
			devices.POST("/quick-setup", h.QuickSetup)
			devices.GET("/statistics", h.UnlockStatistics)
			devices.GET("/:id", h.DetectDevice)
			devices.POST("/:id/unlock", h.UnlockDevice)
			devices.POST("/:id/reset", h.ResetDevice)
		}
	}
}
