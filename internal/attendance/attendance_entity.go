package attendance

import (
	"time"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
)

type Attendance struct {
	ID             string    `gorm:"type:varchar(36);primaryKey"`
	EmployeeID     string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	ClockIn        time.Time `gorm:"not null"`
	ClockOut       *time.Time
	Status         string  `gorm:"type:varchar(20);not null;default:PRESENT"`
	Source         string  `gorm:"type:varchar(30);not null;default:MANUAL"`
	Notes          *string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Attendance) TableName() string {
	return "attendance_records"
}
