package employee

import (
	"zeiterfassung/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/options", h.GetOptions)

		employees.POST("", middleware.RequireAdmin(), h.Create)
		employees.GET("", middleware.RequireAdmin(), h.GetAll)
		employees.GET("/:id", middleware.RequireAdmin(), h.GetByID)
		employees.PUT("/:id", middleware.RequireAdmin(), h.Update)
		employees.DELETE("/:id", middleware.RequireAdmin(), h.Deactivate)
	}
}
