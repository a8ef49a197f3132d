package leave

import (
	"zeiterfassung/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	leaves := r.Group("/leave-requests")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", h.Create)
		leaves.GET("", h.List)
		leaves.GET("/preview", h.Preview)
		leaves.GET("/:id", h.GetByID)
		leaves.DELETE("/:id", h.Delete)

		leaves.POST("/:id/approve", middleware.RequireAdmin(), h.Approve)
		leaves.POST("/:id/reject", middleware.RequireAdmin(), h.Reject)
	}
}
