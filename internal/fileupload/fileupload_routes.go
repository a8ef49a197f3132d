package fileupload

import (
	"zeiterfassung/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	files := r.Group("/files")
	files.Use(middleware.AuthMiddleware())
	{
		files.POST("", h.Upload)
		files.GET("", h.List)
		files.GET("/:id", h.GetByID)
		files.DELETE("/:id", h.Delete)
	}

	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware())
	{
		projects.GET("/:id/files", h.ProjectFiles)
	}
}
