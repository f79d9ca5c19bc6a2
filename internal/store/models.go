package store

import "time"

// User is a registered bot user. The primary key is the Telegram user ID.
type User struct {
	ID        int64  `gorm:"primaryKey"`
	Username  string `gorm:"size:64"`
	FirstName string `gorm:"size:64"`
	Age       int
	Target    string `gorm:"size:128"`
	Level     int    `gorm:"not null;default:1"`
	IsAdmin   bool   `gorm:"not null;default:false"`

	// SurveySent marks that the day-two feedback notice went out, so a
	// restart does not send it twice.
	SurveySent bool `gorm:"not null;default:false"`

	CreatedAt time.Time
}

// Reminder is a user's daily training reminder. One row per user.
type Reminder struct {
	UserID int64 `gorm:"primaryKey"`

	// JobID is the scheduler tag of the active job, kept for log
	// correlation with the trigger registry.
	JobID string `gorm:"size:64"`

	// RemindTime is the wall-clock fire time in "HH:MM".
	RemindTime string `gorm:"size:5;not null"`

	// Enabled carries no column default: gorm drops zero-valued fields
	// that have one, which would turn a disabled insert into an enabled
	// row. Callers always set it explicitly.
	Enabled   bool `gorm:"not null"`
	UpdatedAt time.Time
}

// Rating is a user's accumulated points. One row per user, incremented
// on every correct answer.
type Rating struct {
	UserID    int64 `gorm:"primaryKey"`
	Points    int   `gorm:"not null;default:0"`
	UpdatedAt time.Time
}
