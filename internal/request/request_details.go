package request

import (
	"time"

	requesterrors "hr-portal/internal/request/errors"
)

// Details is the kind-specific part of a request. Exactly one variant is
// populated on a stored Request, selected by its Kind.
type Details interface {
	Kind() Kind
	Validate() error
}

type VacationDetails struct {
	StartDate *time.Time `gorm:"type:date"`
	EndDate   *time.Time `gorm:"type:date"`
	Days      int
	Reason    string `gorm:"type:text"`
}

func (VacationDetails) Kind() Kind { return KindVacation }

func (d VacationDetails) Validate() error {
	if d.StartDate == nil || d.EndDate == nil {
		return requesterrors.ErrInvalidDateFormat
	}
	if d.StartDate.After(*d.EndDate) {
		return requesterrors.ErrInvalidDateRange
	}
	return nil
}

// InclusiveDays counts calendar days from start to end, both included.
func (d VacationDetails) InclusiveDays() int {
	if d.StartDate == nil || d.EndDate == nil {
		return 0
	}
	return int(d.EndDate.Sub(*d.StartDate).Hours()/24) + 1
}

type FundDetails struct {
	FundType    string `gorm:"type:varchar(50)"`
	RequestType string `gorm:"type:varchar(50)"`
	AmountCents int64
	Reason      string `gorm:"type:text"`
}

func (FundDetails) Kind() Kind { return KindFund }

func (d FundDetails) Validate() error {
	if d.FundType == "" {
		return requesterrors.ErrFundTypeRequired
	}
	if d.AmountCents <= 0 {
		return requesterrors.ErrAmountRequired
	}
	return nil
}

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

type GeneralDetails struct {
	RequestType string `gorm:"type:varchar(50)"`
	Subject     string `gorm:"type:varchar(200)"`
	Description string `gorm:"type:text"`
	Priority    string `gorm:"type:varchar(10)"`
}

func (GeneralDetails) Kind() Kind { return KindGeneral }

func (d GeneralDetails) Validate() error {
	if d.Subject == "" {
		return requesterrors.ErrSubjectRequired
	}
	switch d.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return nil
	default:
		return requesterrors.ErrInvalidPriority
	}
}

// Details returns the populated variant.
func (r Request) Details() Details {
	switch r.Kind {
	case KindVacation:
		return r.Vacation
	case KindFund:
		return r.Fund
	default:
		return r.General
	}
}

// SetDetails stores d and sets the request kind to match.
func (r *Request) SetDetails(d Details) {
	r.Vacation, r.Fund, r.General = VacationDetails{}, FundDetails{}, GeneralDetails{}
	r.Kind = d.Kind()
	switch v := d.(type) {
	case VacationDetails:
		r.Vacation = v
	case FundDetails:
		r.Fund = v
	case GeneralDetails:
		r.General = v
	}
}
