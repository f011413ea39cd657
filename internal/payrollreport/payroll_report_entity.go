package payrollreport

import (
	"time"

	"hr-portal/internal/workflow"
)

const (
	StatusDraft           = "Draft"
	StatusPendingApproval = "Pending Approval"
	StatusApproved        = "Approved"
	StatusRejected        = "Rejected"
)

var Lifecycle = workflow.NewMachine(StatusDraft, map[string][]string{
	StatusDraft:           {StatusPendingApproval},
	StatusPendingApproval: {StatusApproved, StatusRejected},
})

type Report struct {
	ID              string    `gorm:"type:varchar(20);primaryKey"`
	PeriodLabel     string    `gorm:"type:varchar(100);not null"`
	PeriodStart     time.Time `gorm:"type:date"`
	PeriodEnd       time.Time `gorm:"type:date"`
	PayCycle        string    `gorm:"type:varchar(10);not null;index"`
	EmployeeCount   int
	GrossPayCents   int64
	DeductionsCents int64
	NetPayCents     int64

	Status      string `gorm:"type:varchar(20);not null;index"`
	SubmittedBy string `gorm:"type:varchar(150)"`
	Approver    string `gorm:"type:varchar(150)"`
	Notes       string `gorm:"type:text"`
	Version     int    `gorm:"not null;default:1"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DecidedAt *time.Time
}

func (Report) TableName() string { return "payroll_reports" }

// Decide returns the mutation applied when an approver acts on a report.
func Decide(status, approver, notes string, at time.Time) func(Report) Report {
	return func(r Report) Report {
		r.Status = status
		r.Approver = approver
		r.Notes = notes
		r.Version++
		r.UpdatedAt = at
		r.DecidedAt = &at
		return r
	}
}

// Submit returns the mutation that sends a draft to its approvers.
func Submit(by string, at time.Time) func(Report) Report {
	return func(r Report) Report {
		r.Status = StatusPendingApproval
		r.SubmittedBy = by
		r.Version++
		r.UpdatedAt = at
		return r
	}
}
