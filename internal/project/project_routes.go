package project

import (
	"zeiterfassung/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware())
	{
		projects.GET("", h.GetAll)
		projects.GET("/:id", h.GetByID)

		projects.POST("", middleware.RequireAdmin(), h.Create)
		projects.PUT("/:id", middleware.RequireAdmin(), h.Update)
		projects.DELETE("/:id", middleware.RequireAdmin(), h.Archive)
	}
}
