package attendance

import (
	"hr-portal/internal/middleware"
	"hr-portal/internal/session"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, gate *session.Gate) {
	attendance := r.Group("/attendance")
	{
		attendance.GET("", gate.Require(session.ResourceAttendance, session.ActionRead, session.ModeAPI), h.List)
		attendance.GET("/calendar", gate.Require(session.ResourceAttendance, session.ActionRead, session.ModeAPI), h.Calendar)
		attendance.POST("/clock-in",
			gate.Require(session.ResourceAttendance, session.ActionCreate, session.ModeAPI),
			middleware.RateLimitByUser(0.2, 2),
			h.ClockIn,
		)
		attendance.POST("/clock-out",
			gate.Require(session.ResourceAttendance, session.ActionCreate, session.ModeAPI),
			middleware.RateLimitByUser(0.2, 2),
			h.ClockOut,
		)
	}
}
