package report

import (
	"zeiterfassung/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		reports.GET("/timesheets/:employee_id", h.MonthlyTimesheet)
	}
}
