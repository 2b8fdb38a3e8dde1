package model

import "time"

// Task represents a single tracked item owned by a Telegram user.
type Task struct {
	ID         uint  `gorm:"primaryKey"`
	UserID     int64 `gorm:"index"`
	Text       string
	Deadline   *time.Time
	Priority   Priority `gorm:"default:low"`
	Category   Category `gorm:"default:other"`
	Status     Status   `gorm:"index;default:active"`
	ReminderAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
