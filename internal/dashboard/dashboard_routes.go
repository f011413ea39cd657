package dashboard

import (
	"hr-portal/internal/session"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the dashboard pages. Unauthorized visitors are
// redirected to the landing route rather than answered with 401/403.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, gate *session.Gate) {
	pages := r.Group("/dashboard")
	{
		pages.GET("/employee", gate.Require(session.ResourceEmployeeDashboard, session.ActionView, session.ModePage), h.Employee)
		pages.GET("/hr", gate.Require(session.ResourceHRDashboard, session.ActionView, session.ModePage), h.HR)
		pages.GET("/payroll", gate.Require(session.ResourcePayrollDashboard, session.ActionView, session.ModePage), h.Payroll)
	}
}
