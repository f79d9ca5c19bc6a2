package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrReminderNotFound is returned when a user has no reminder row.
var ErrReminderNotFound = errors.New("reminder not found")

// ReminderRepo manages daily reminder settings.
type ReminderRepo interface {
	Get(ctx context.Context, userID int64) (*Reminder, error)

	// Upsert creates or replaces the user's reminder row.
	Upsert(ctx context.Context, rem *Reminder) error

	SetEnabled(ctx context.Context, userID int64, enabled bool) error
	SetTime(ctx context.Context, userID int64, remindTime, jobID string) error
	Delete(ctx context.Context, userID int64) error

	// AllEnabled lists reminders that must be rescheduled on startup.
	AllEnabled(ctx context.Context) ([]Reminder, error)
}

type reminderRepo struct {
	db *gorm.DB
}

func (r *reminderRepo) Get(ctx context.Context, userID int64) (*Reminder, error) {
	var rem Reminder
	err := r.db.WithContext(ctx).First(&rem, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReminderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reminder for user %d: %w", userID, err)
	}
	return &rem, nil
}

func (r *reminderRepo) Upsert(ctx context.Context, rem *Reminder) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(rem).Error
	if err != nil {
		return fmt.Errorf("upsert reminder for user %d: %w", rem.UserID, err)
	}
	return nil
}

func (r *reminderRepo) SetEnabled(ctx context.Context, userID int64, enabled bool) error {
	res := r.db.WithContext(ctx).
		Model(&Reminder{}).
		Where("user_id = ?", userID).
		Update("enabled", enabled)
	if res.Error != nil {
		return fmt.Errorf("set reminder enabled for user %d: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrReminderNotFound
	}
	return nil
}

func (r *reminderRepo) SetTime(ctx context.Context, userID int64, remindTime, jobID string) error {
	res := r.db.WithContext(ctx).
		Model(&Reminder{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"remind_time": remindTime, "job_id": jobID})
	if res.Error != nil {
		return fmt.Errorf("set reminder time for user %d: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrReminderNotFound
	}
	return nil
}

func (r *reminderRepo) Delete(ctx context.Context, userID int64) error {
	err := r.db.WithContext(ctx).Delete(&Reminder{}, "user_id = ?", userID).Error
	if err != nil {
		return fmt.Errorf("delete reminder for user %d: %w", userID, err)
	}
	return nil
}

func (r *reminderRepo) AllEnabled(ctx context.Context) ([]Reminder, error) {
	var rems []Reminder
	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Find(&rems).Error
	if err != nil {
		return nil, fmt.Errorf("list enabled reminders: %w", err)
	}
	return rems, nil
}
