package timeentry

import (
	"zeiterfassung/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	entries := r.Group("/time-entries")
	entries.Use(middleware.AuthMiddleware())
	{
		entries.POST("/clock-in", middleware.Idempotency(rdb), h.ClockIn)
		entries.POST("/:id/clock-out", middleware.Idempotency(rdb), h.ClockOut)
		entries.GET("/open", h.GetOpenSession)
		entries.GET("", h.List)
		entries.POST("/:id/documentation", h.AttachDocumentation)
		entries.POST("/:id/pauses", h.RecordPause)

		entries.PATCH("/:id", middleware.RequireAdmin(), h.AdminUpdate)
		entries.DELETE("/:id", middleware.RequireAdmin(), h.AdminDelete)
	}
}
