package recruitment

import (
	"slices"
	"time"
)

// Resource describes one recruitment collection: its route name, status
// enum (first entry is the initial status) and filterable columns.
type Resource[T Record] struct {
	Name     string
	Statuses []string
	Filters  []string
	Order    string
	prepare  func(rec T, id string, now time.Time) T
}

func (r Resource[T]) Initial() string { return r.Statuses[0] }

func (r Resource[T]) ValidStatus(status string) bool {
	return slices.Contains(r.Statuses, status)
}

var Applicants = Resource[Applicant]{
	Name:     "applicants",
	Statuses: []string{"New", "Screening", "Interview", "Offer", "Hired", "Rejected"},
	Filters:  []string{"position", "source"},
	Order:    "applied_at DESC",
	prepare: func(a Applicant, id string, now time.Time) Applicant {
		a.ID = id
		a.Version = 1
		if a.AppliedAt.IsZero() {
			a.AppliedAt = now
		}
		return a
	},
}

var Interviews = Resource[Interview]{
	Name:     "interviews",
	Statuses: []string{"Scheduled", "Completed", "Cancelled", "NoShow"},
	Filters:  []string{"mode"},
	Order:    "scheduled_at ASC",
	prepare: func(i Interview, id string, _ time.Time) Interview {
		i.ID = id
		i.Version = 1
		if i.Mode == "" {
			i.Mode = "Onsite"
		}
		return i
	},
}

var Offers = Resource[Offer]{
	Name:     "offers",
	Statuses: []string{"Pending", "Accepted", "Declined", "Withdrawn"},
	Filters:  []string{"department"},
	Order:    "start_date ASC",
	prepare: func(o Offer, id string, _ time.Time) Offer {
		o.ID = id
		o.Version = 1
		return o
	},
}

var Psychometrics = Resource[PsychometricResult]{
	Name:     "psychometrics",
	Statuses: []string{"Pending", "Passed", "Failed"},
	Filters:  []string{"exam_type"},
	Order:    "taken_at DESC",
	prepare: func(p PsychometricResult, id string, now time.Time) PsychometricResult {
		p.ID = id
		p.Version = 1
		if p.TakenAt.IsZero() {
			p.TakenAt = now
		}
		return p
	},
}

var Vacancies = Resource[Vacancy]{
	Name:     "vacancies",
	Statuses: []string{"Open", "OnHold", "Filled", "Closed"},
	Filters:  []string{"department", "plant", "priority"},
	Order:    "opened_at DESC",
	prepare: func(v Vacancy, id string, now time.Time) Vacancy {
		v.ID = id
		v.Version = 1
		if v.Priority == "" {
			v.Priority = "Medium"
		}
		if v.OpenedAt.IsZero() {
			v.OpenedAt = now
		}
		return v
	},
}
