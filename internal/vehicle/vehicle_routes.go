package vehicle

import (
	"zeiterfassung/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.AuthMiddleware())
	{
		vehicles.GET("", h.GetAll)
		vehicles.POST("/usages", h.RecordUsage)
		vehicles.GET("/usages", h.ListUsages)

		vehicles.POST("", middleware.RequireAdmin(), h.Create)
		vehicles.PUT("/:id", middleware.RequireAdmin(), h.Update)
		vehicles.DELETE("/:id", middleware.RequireAdmin(), h.Retire)
	}
}
