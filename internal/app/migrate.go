package app

import (
	"fmt"

	"hr-portal/internal/attendance"
	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/notification"
	"hr-portal/internal/seed"

	"gorm.io/gorm"
)

// Models lists every table the service owns.
func Models() []any {
	return append(seed.Models(),
		&attendance.Attendance{},
		&notification.Notification{},
		&kafka.OutboxEvent{},
	)
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
