package payrollreport

import (
	"hr-portal/internal/middleware"
	"hr-portal/internal/session"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, gate *session.Gate) {
	reports := r.Group("/payroll/reports")
	{
		reports.GET("", gate.Require(session.ResourcePayrollReports, session.ActionRead, session.ModeAPI), handler.List)
		reports.GET("/export.xlsx",
			gate.Require(session.ResourcePayrollReports, session.ActionExport, session.ModeAPI),
			middleware.RateLimitByUser(0.2, 2),
			handler.ExportXLSX,
		)
		reports.GET("/:id", gate.Require(session.ResourcePayrollReports, session.ActionRead, session.ModeAPI), handler.GetByID)
		reports.GET("/:id/pdf",
			gate.Require(session.ResourcePayrollReports, session.ActionExport, session.ModeAPI),
			middleware.RateLimitByUser(1, 5),
			handler.PDF,
		)
		reports.POST("/:id/submit",
			gate.Require(session.ResourcePayrollReports, session.ActionUpdate, session.ModeAPI),
			middleware.RateLimitByUser(5, 10),
			handler.Submit,
		)
		reports.POST("/:id/approve",
			gate.Require(session.ResourcePayrollReports, session.ActionApprove, session.ModeAPI),
			middleware.RateLimitByUser(5, 10),
			handler.Approve,
		)
		reports.POST("/:id/reject",
			gate.Require(session.ResourcePayrollReports, session.ActionApprove, session.ModeAPI),
			middleware.RateLimitByUser(5, 10),
			handler.Reject,
		)
	}
}
