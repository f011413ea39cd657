package employee

import (
	"hr-portal/internal/middleware"
	"hr-portal/internal/session"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	gate *session.Gate,
) {
	employees := r.Group("/employees")
	{
		employees.GET("",
			gate.Require(session.ResourceEmployees, session.ActionRead, session.ModeAPI),
			middleware.RateLimitByUser(3, 10),
			handler.List,
		)

		employees.GET("/:id",
			gate.Require(session.ResourceEmployees, session.ActionRead, session.ModeAPI),
			middleware.RateLimitByUser(3, 10),
			handler.GetByID,
		)

		employees.POST("",
			gate.Require(session.ResourceEmployees, session.ActionCreate, session.ModeAPI),
			middleware.RateLimitByUser(0.5, 2),
			handler.Create,
		)

		employees.PUT("/:id",
			gate.Require(session.ResourceEmployees, session.ActionUpdate, session.ModeAPI),
			middleware.RateLimitByUser(0.5, 2),
			handler.Update,
		)

		employees.DELETE("/:id",
			gate.Require(session.ResourceEmployees, session.ActionDelete, session.ModeAPI),
			middleware.RateLimitByUser(0.05, 1),
			handler.Delete,
		)

		employees.POST("/:id/documents",
			gate.Require(session.ResourceEmployees, session.ActionUpdate, session.ModeAPI),
			middleware.RateLimitByUser(1, 5),
			handler.UploadDocument,
		)

		employees.GET("/:id/documents/:docId",
			gate.Require(session.ResourceEmployees, session.ActionRead, session.ModeAPI),
			middleware.RateLimitByUser(3, 10),
			handler.DownloadDocument,
		)

		employees.DELETE("/:id/documents/:docId",
			gate.Require(session.ResourceEmployees, session.ActionUpdate, session.ModeAPI),
			handler.DeleteDocument,
		)
	}
}
