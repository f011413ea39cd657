package employee

import "io"

type CreateEmployeeRequest struct {
	EmployeeCode  string  `json:"employee_code"`
	FirstName     string  `json:"first_name" binding:"required"`
	LastName      string  `json:"last_name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Position      string  `json:"position" binding:"required"`
	Department    string  `json:"department" binding:"required"`
	Plant         string  `json:"plant"`
	HireDate      string  `json:"hire_date" binding:"required,isodate"`
	Collar        string  `json:"collar" binding:"required,oneof=white blue"`
	MonthlySalary float64 `json:"monthly_salary" binding:"omitempty,gte=0"`
	HourlyRate    float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	BankAccount   string  `json:"bank_account"`
	NSS           string  `json:"nss"`
	RFC           string  `json:"rfc"`
}

type UpdateEmployeeRequest = CreateEmployeeRequest

type ListQuery struct {
	Search     string `form:"search"`
	Department string `form:"department"`
	Plant      string `form:"plant"`
	Collar     string `form:"collar"`
}

// DocumentUpload is a file received from the dashboard upload form.
type DocumentUpload struct {
	Name    string
	Type    string
	Size    int64
	Content io.Reader
}

// DocumentFile locates a stored document on disk.
type DocumentFile struct {
	Name string
	Path string
}

type DocumentResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
	UploadDate string `json:"upload_date"`
}

type EmployeeResponse struct {
	ID            string             `json:"id"`
	EmployeeCode  string             `json:"employee_code"`
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	FullName      string             `json:"full_name"`
	Email         string             `json:"email"`
	Position      string             `json:"position"`
	Department    string             `json:"department"`
	Plant         string             `json:"plant,omitempty"`
	HireDate      string             `json:"hire_date"`
	Collar        string             `json:"collar"`
	PayCycle      string             `json:"pay_cycle"`
	MonthlySalary float64            `json:"monthly_salary,omitempty"`
	HourlyRate    float64            `json:"hourly_rate,omitempty"`
	BankAccount   string             `json:"bank_account,omitempty"`
	NSS           string             `json:"nss,omitempty"`
	RFC           string             `json:"rfc,omitempty"`
	Documents     []DocumentResponse `json:"documents"`
}

// ListResponse is the body of GET /api/employees.
type ListResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}
