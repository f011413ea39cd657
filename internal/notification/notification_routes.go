package notification

import (
	"hr-portal/internal/session"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, gate *session.Gate) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", gate.Require(session.ResourceNotifications, session.ActionRead, session.ModeAPI), h.List)
		notifications.POST("/:id/read", gate.Require(session.ResourceNotifications, session.ActionUpdate, session.ModeAPI), h.MarkRead)
	}
}
