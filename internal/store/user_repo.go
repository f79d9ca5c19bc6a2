package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUserNotFound is returned when a lookup misses.
var ErrUserNotFound = errors.New("user not found")

// UserRepo manages registered users.
type UserRepo interface {
	// Create inserts a user, ignoring the insert when the ID already
	// exists. Registration is idempotent across repeated /start.
	Create(ctx context.Context, user *User) error

	Exists(ctx context.Context, userID int64) (bool, error)
	Get(ctx context.Context, userID int64) (*User, error)

	// Level reads the user's difficulty level.
	Level(ctx context.Context, userID int64) (int, error)

	// SetLevel writes the user's difficulty level.
	SetLevel(ctx context.Context, userID int64, level int) error

	// Count reports the number of registered users.
	Count(ctx context.Context) (int64, error)

	// DueForSurvey lists users registered at least minAge ago who have
	// not received the feedback notice. Used to reschedule after restart.
	DueForSurvey(ctx context.Context, now time.Time, minAge time.Duration) ([]User, error)

	MarkSurveySent(ctx context.Context, userID int64) error
}

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) Create(ctx context.Context, user *User) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(user).Error
	if err != nil {
		return fmt.Errorf("create user %d: %w", user.ID, err)
	}
	return nil
}

func (r *userRepo) Exists(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check user %d: %w", userID, err)
	}
	return count > 0, nil
}

func (r *userRepo) Get(ctx context.Context, userID int64) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	return &user, nil
}

func (r *userRepo) Level(ctx context.Context, userID int64) (int, error) {
	user, err := r.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.Level, nil
}

func (r *userRepo) SetLevel(ctx context.Context, userID int64, level int) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("level", level)
	if res.Error != nil {
		return fmt.Errorf("set level for user %d: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (r *userRepo) DueForSurvey(ctx context.Context, now time.Time, minAge time.Duration) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("survey_sent = ? AND created_at <= ?", false, now.Add(-minAge)).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users due for survey: %w", err)
	}
	return users, nil
}

func (r *userRepo) MarkSurveySent(ctx context.Context, userID int64) error {
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("survey_sent", true).Error
	if err != nil {
		return fmt.Errorf("mark survey sent for user %d: %w", userID, err)
	}
	return nil
}
