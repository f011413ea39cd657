package employee

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	CollarWhite = "white"
	CollarBlue  = "blue"

	PayCycleBiweekly = "biweekly"
	PayCycleWeekly   = "weekly"
)

// CodeCounter is the counter sequence behind employee codes.
const CodeCounter = "employee"

func FormatCode(seq int64) string {
	return fmt.Sprintf("EMP-%06d", seq)
}

// PayCycleFor: white collar is paid every two weeks, blue collar weekly.
func PayCycleFor(collar string) string {
	if collar == CollarBlue {
		return PayCycleWeekly
	}
	return PayCycleBiweekly
}

type Employee struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	EmployeeCode string `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_code"`
	FirstName    string `gorm:"type:varchar(100);not null"`
	LastName     string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(150);uniqueIndex:uq_employee_email"`
	Position     string `gorm:"type:varchar(100)"`
	Department   string `gorm:"type:varchar(100);index"`
	Plant        string `gorm:"type:varchar(100)"`

	HireDate time.Time `gorm:"type:date"`

	Collar             string `gorm:"type:varchar(10);not null;default:'white'"`
	PayCycle           string `gorm:"type:varchar(10);not null;default:'biweekly'"`
	MonthlySalaryCents int64
	HourlyRateCents    int64
	BankAccount        string `gorm:"type:varchar(34)"`
	NSS                string `gorm:"type:varchar(20)"`
	RFC                string `gorm:"type:varchar(20)"`

	Documents []Document `gorm:"foreignKey:EmployeeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

type Document struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	EmployeeID  string `gorm:"type:varchar(36);not null;index"`
	Name        string `gorm:"type:varchar(255);not null"`
	Type        string `gorm:"type:varchar(50)"`
	URL         string `gorm:"type:varchar(500)"`
	StoragePath string `gorm:"type:varchar(500)"`
	Size        int64
	UploadedAt  time.Time
}
