package notification

import "time"

// Notification is a message shown to one employee. SourceKey identifies the
// event it was derived from, so a redelivered message does not notify twice.
type Notification struct {
	ID         string `gorm:"type:varchar(36);primaryKey"`
	EmployeeID string `gorm:"type:varchar(36);not null;index:idx_notifications_employee"`
	SourceKey  string `gorm:"type:varchar(120);not null;uniqueIndex:uq_notification_source"`
	Title      string `gorm:"type:varchar(200);not null"`
	Message    string `gorm:"type:text"`
	ReadAt     *time.Time
	CreatedAt  time.Time
}

func (n Notification) IsRead() bool {
	return n.ReadAt != nil
}
