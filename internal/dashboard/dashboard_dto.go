package dashboard

import (
	"hr-portal/internal/attendance"
	"hr-portal/internal/payrollreport"
	"hr-portal/internal/request"
)

type VacationBalance struct {
	Allowance   int     `json:"allowance"`
	Used        int     `json:"used"`
	Remaining   int     `json:"remaining"`
	PercentUsed float64 `json:"percent_used"`
}

type FundUsage struct {
	Limit       float64 `json:"limit"`
	Used        float64 `json:"used"`
	Remaining   float64 `json:"remaining"`
	PercentUsed float64 `json:"percent_used"`
}

type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

func (c *StatusCounts) add(status string) {
	switch status {
	case request.StatusPending:
		c.Pending++
	case request.StatusApproved:
		c.Approved++
	case request.StatusRejected:
		c.Rejected++
	}
	c.Total++
}

type EmployeeDashboard struct {
	EmployeeID     string                    `json:"employee_id"`
	Vacation       VacationBalance           `json:"vacation"`
	Fund           FundUsage                 `json:"savings_fund"`
	RecentRequests []request.RequestResponse `json:"recent_requests"`
	Calendar       *attendance.Month         `json:"calendar,omitempty"`
}

type HRDashboard struct {
	Counts  map[request.Kind]StatusCounts `json:"counts"`
	Totals  StatusCounts                  `json:"totals"`
	Pending []request.RequestResponse     `json:"pending"`
}

type ReportTotals struct {
	Count    int     `json:"count"`
	GrossPay float64 `json:"gross_pay"`
	NetPay   float64 `json:"net_pay"`
}

type PayrollDashboard struct {
	Totals          map[string]ReportTotals        `json:"totals"`
	PendingApproval []payrollreport.ReportResponse `json:"pending_approval"`
}
