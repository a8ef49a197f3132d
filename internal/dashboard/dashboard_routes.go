package dashboard

import (
	"zeiterfassung/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	board := r.Group("/dashboard")
	board.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		board.GET("/active-sessions", h.ActiveSessions)
		board.GET("/summary", h.Summary)
	}
}
