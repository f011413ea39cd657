package request

// CreateRequest carries the fields of every kind; only the ones of the
// target kind are read.
type CreateRequest struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`

	StartDate string `json:"start_date" binding:"omitempty,isodate"`
	EndDate   string `json:"end_date" binding:"omitempty,isodate"`
	Days      int    `json:"days" binding:"omitempty,min=1"`
	Reason    string `json:"reason"`

	FundType string  `json:"fund_type"`
	Amount   float64 `json:"amount" binding:"omitempty,gt=0"`

	RequestType string `json:"request_type"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"omitempty,oneof=Low Medium High Urgent"`
}

// TransitionRequest is the approver's decision. Reason is the optional
// rejection note. Version, when given, must equal the stored version.
type TransitionRequest struct {
	Status  string `json:"status" binding:"required,oneof=Approved Rejected"`
	Reason  string `json:"reason" binding:"max=1000"`
	Version *int   `json:"version" binding:"omitempty,min=1"`
}

type ListQuery struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	EmployeeID string `form:"employee_id"`
	Department string `form:"department"`
}

type RequestResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Type         Kind    `json:"type"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Department   string  `json:"department,omitempty"`
	Status       string  `json:"status"`
	Approver     string  `json:"approver,omitempty"`
	Notes        string  `json:"notes,omitempty"`
	Version      int     `json:"version"`
	CreatedAt    string  `json:"created_at"`
	DecidedAt    *string `json:"decided_at,omitempty"`

	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Days      int    `json:"days,omitempty"`
	Reason    string `json:"reason,omitempty"`

	FundType string  `json:"fund_type,omitempty"`
	Amount   float64 `json:"amount,omitempty"`

	RequestType string `json:"request_type,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// ListResponse is the body of GET /api/requests/{type}.
type ListResponse struct {
	Requests []RequestResponse `json:"requests"`
}
