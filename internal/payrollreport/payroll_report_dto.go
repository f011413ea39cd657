package payrollreport

type ListQuery struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	PayCycle string `form:"pay_cycle"`
}

type ApproveRequest struct {
	Version *int `json:"version" binding:"omitempty,min=1"`
}

type SubmitRequest struct {
	Version *int `json:"version" binding:"omitempty,min=1"`
}

type RejectRequest struct {
	Reason  string `json:"reason"`
	Version *int   `json:"version" binding:"omitempty,min=1"`
}

type ReportResponse struct {
	ID            string  `json:"id"`
	PeriodLabel   string  `json:"period_label"`
	PeriodStart   string  `json:"period_start"`
	PeriodEnd     string  `json:"period_end"`
	PayCycle      string  `json:"pay_cycle"`
	EmployeeCount int     `json:"employee_count"`
	GrossPay      float64 `json:"gross_pay"`
	Deductions    float64 `json:"deductions"`
	NetPay        float64 `json:"net_pay"`
	Status        string  `json:"status"`
	SubmittedBy   string  `json:"submitted_by"`
	Approver      string  `json:"approver,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	Version       int     `json:"version"`
	DecidedAt     *string `json:"decided_at,omitempty"`
}

type ListResponse struct {
	Reports []ReportResponse `json:"reports"`
}
