package request

import (
	"fmt"
	"strings"
	"time"

	requesterrors "hr-portal/internal/request/errors"
	"hr-portal/internal/workflow"
)

type Kind string

const (
	KindVacation Kind = "vacation"
	KindFund     Kind = "fund"
	KindGeneral  Kind = "general"
)

var Kinds = []Kind{KindVacation, KindFund, KindGeneral}

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindVacation, KindFund, KindGeneral:
		return k, nil
	default:
		return "", requesterrors.ErrUnknownKind
	}
}

// CounterName is the counter sequence behind the kind's request codes.
func (k Kind) CounterName() string {
	return "request_" + string(k)
}

// FormatCode renders a request code such as VAC-000001.
func FormatCode(k Kind, seq int64) string {
	return fmt.Sprintf("%s-%06d", k.codePrefix(), seq)
}

func (k Kind) codePrefix() string {
	switch k {
	case KindVacation:
		return "VAC"
	case KindFund:
		return "FND"
	default:
		return "GEN"
	}
}

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Lifecycle: Pending is the only state with outgoing edges.
var Lifecycle = workflow.NewMachine(StatusPending, map[string][]string{
	StatusPending: {StatusApproved, StatusRejected},
})

type Request struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	Code         string `gorm:"type:varchar(20);not null;uniqueIndex:uq_request_code"`
	Kind         Kind   `gorm:"type:varchar(20);not null;index:idx_requests_kind_status"`
	EmployeeID   string `gorm:"type:varchar(36);not null;index:idx_requests_employee"`
	EmployeeName string `gorm:"type:varchar(150)"`
	Department   string `gorm:"type:varchar(100)"`

	Status   string `gorm:"type:varchar(20);not null;default:'Pending';index:idx_requests_kind_status"`
	Approver string `gorm:"type:varchar(150)"`
	Notes    string `gorm:"type:text"`
	Version  int    `gorm:"not null;default:1"`

	Vacation VacationDetails `gorm:"embedded;embeddedPrefix:vacation_"`
	Fund     FundDetails     `gorm:"embedded;embeddedPrefix:fund_"`
	General  GeneralDetails  `gorm:"embedded;embeddedPrefix:general_"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DecidedAt *time.Time
}

// Decide returns the mutation applied when an approver acts on a request.
func Decide(status, approver, notes string, at time.Time) func(Request) Request {
	return func(r Request) Request {
		r.Status = status
		r.Approver = approver
		r.Notes = notes
		r.Version++
		r.DecidedAt = &at
		r.UpdatedAt = at
		return r
	}
}
