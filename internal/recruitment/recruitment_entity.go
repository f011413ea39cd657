package recruitment

import (
	"time"
)

// Record is implemented by every recruitment entity so one service and
// handler can serve all of them.
type Record interface {
	RecordID() string
	RecordStatus() string
	RecordVersion() int
	SearchFields() []string
	// Category returns the value of a filterable column, "" when unknown.
	Category(name string) string
}

type Applicant struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name" binding:"required"`
	Email     string    `gorm:"type:varchar(150)" json:"email" binding:"omitempty,email"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	Position  string    `gorm:"type:varchar(100)" json:"position" binding:"required"`
	Source    string    `gorm:"type:varchar(50)" json:"source"`
	Status    string    `gorm:"type:varchar(20);not null;index" json:"status"`
	AppliedAt time.Time `json:"applied_at"`
	Version   int       `gorm:"not null;default:1" json:"version"`
}

func (a Applicant) RecordID() string     { return a.ID }
func (a Applicant) RecordStatus() string { return a.Status }
func (a Applicant) RecordVersion() int   { return a.Version }
func (a Applicant) SearchFields() []string {
	return []string{a.Name, a.Email, a.Position, a.Source}
}
func (a Applicant) Category(name string) string {
	switch name {
	case "position":
		return a.Position
	case "source":
		return a.Source
	}
	return ""
}

type Interview struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ApplicantName string    `gorm:"type:varchar(150);not null" json:"applicant_name" binding:"required"`
	Position      string    `gorm:"type:varchar(100)" json:"position" binding:"required"`
	Interviewer   string    `gorm:"type:varchar(150)" json:"interviewer"`
	ScheduledAt   time.Time `json:"scheduled_at" binding:"required"`
	Mode          string    `gorm:"type:varchar(10)" json:"mode" binding:"omitempty,oneof=Onsite Video Phone"`
	Status        string    `gorm:"type:varchar(20);not null;index" json:"status"`
	Feedback      string    `gorm:"type:text" json:"feedback,omitempty"`
	Version       int       `gorm:"not null;default:1" json:"version"`
}

func (i Interview) RecordID() string     { return i.ID }
func (i Interview) RecordStatus() string { return i.Status }
func (i Interview) RecordVersion() int   { return i.Version }
func (i Interview) SearchFields() []string {
	return []string{i.ApplicantName, i.Position, i.Interviewer}
}
func (i Interview) Category(name string) string {
	if name == "mode" {
		return i.Mode
	}
	return ""
}

type Offer struct {
	ID                 string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CandidateName      string    `gorm:"type:varchar(150);not null" json:"candidate_name" binding:"required"`
	Position           string    `gorm:"type:varchar(100)" json:"position" binding:"required"`
	Department         string    `gorm:"type:varchar(100)" json:"department"`
	SalaryOfferedCents int64     `json:"salary_offered" binding:"gte=0"`
	StartDate          time.Time `gorm:"type:date" json:"start_date"`
	Status             string    `gorm:"type:varchar(20);not null;index" json:"status"`
	Version            int       `gorm:"not null;default:1" json:"version"`
}

func (o Offer) RecordID() string     { return o.ID }
func (o Offer) RecordStatus() string { return o.Status }
func (o Offer) RecordVersion() int   { return o.Version }
func (o Offer) SearchFields() []string {
	return []string{o.CandidateName, o.Position, o.Department}
}
func (o Offer) Category(name string) string {
	if name == "department" {
		return o.Department
	}
	return ""
}

type PsychometricResult struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CandidateName string    `gorm:"type:varchar(150);not null" json:"candidate_name" binding:"required"`
	ExamType      string    `gorm:"type:varchar(50)" json:"exam_type" binding:"required"`
	Score         int       `json:"score" binding:"gte=0"`
	MaxScore      int       `json:"max_score" binding:"gte=0"`
	TakenAt       time.Time `json:"taken_at"`
	Status        string    `gorm:"type:varchar(20);not null;index" json:"status"`
	Version       int       `gorm:"not null;default:1" json:"version"`
}

func (p PsychometricResult) RecordID() string     { return p.ID }
func (p PsychometricResult) RecordStatus() string { return p.Status }
func (p PsychometricResult) RecordVersion() int   { return p.Version }
func (p PsychometricResult) SearchFields() []string {
	return []string{p.CandidateName, p.ExamType}
}
func (p PsychometricResult) Category(name string) string {
	if name == "exam_type" {
		return p.ExamType
	}
	return ""
}

type Vacancy struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title      string    `gorm:"type:varchar(150);not null" json:"title" binding:"required"`
	Department string    `gorm:"type:varchar(100)" json:"department" binding:"required"`
	Plant      string    `gorm:"type:varchar(100)" json:"plant"`
	Openings   int       `json:"openings" binding:"gte=0"`
	Priority   string    `gorm:"type:varchar(10)" json:"priority" binding:"omitempty,oneof=Low Medium High Critical"`
	Status     string    `gorm:"type:varchar(20);not null;index" json:"status"`
	OpenedAt   time.Time `json:"opened_at"`
	Version    int       `gorm:"not null;default:1" json:"version"`
}

func (Vacancy) TableName() string { return "vacancies" }

func (v Vacancy) RecordID() string     { return v.ID }
func (v Vacancy) RecordStatus() string { return v.Status }
func (v Vacancy) RecordVersion() int   { return v.Version }
func (v Vacancy) SearchFields() []string {
	return []string{v.Title, v.Department, v.Plant}
}
func (v Vacancy) Category(name string) string {
	switch name {
	case "department":
		return v.Department
	case "plant":
		return v.Plant
	case "priority":
		return v.Priority
	}
	return ""
}
