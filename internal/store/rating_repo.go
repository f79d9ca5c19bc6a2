package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingEntry is one leaderboard row.
type RatingEntry struct {
	UserID    int64
	FirstName string
	Points    int
}

// Standing is a user's own leaderboard position.
type Standing struct {
	Rank   int
	Points int
}

// RatingRepo manages accumulated points.
type RatingRepo interface {
	// AddPoints upserts the user's row, incrementing on conflict.
	AddPoints(ctx context.Context, userID int64, points int) error

	// Top returns the highest-scoring users, best first.
	Top(ctx context.Context, limit int) ([]RatingEntry, error)

	// Standing returns the user's rank and points. A user with no rating
	// row gets rank 0 and zero points.
	Standing(ctx context.Context, userID int64) (*Standing, error)
}

type ratingRepo struct {
	db *gorm.DB
}

func (r *ratingRepo) AddPoints(ctx context.Context, userID int64, points int) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"points": gorm.Expr("ratings.points + ?", points),
			}),
		}).
		Create(&Rating{UserID: userID, Points: points}).Error
	if err != nil {
		return fmt.Errorf("add %d points for user %d: %w", points, userID, err)
	}
	return nil
}

func (r *ratingRepo) Top(ctx context.Context, limit int) ([]RatingEntry, error) {
	var entries []RatingEntry
	err := r.db.WithContext(ctx).
		Model(&Rating{}).
		Select("ratings.user_id, users.first_name, ratings.points").
		Joins("JOIN users ON users.id = ratings.user_id").
		Order("ratings.points DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("load top %d ratings: %w", limit, err)
	}
	return entries, nil
}

func (r *ratingRepo) Standing(ctx context.Context, userID int64) (*Standing, error) {
	var rating Rating
	err := r.db.WithContext(ctx).
		Limit(1).
		Find(&rating, "user_id = ?", userID).Error
	if err != nil {
		return nil, fmt.Errorf("load rating for user %d: %w", userID, err)
	}
	if rating.UserID == 0 {
		return &Standing{}, nil
	}

	var ahead int64
	err = r.db.WithContext(ctx).
		Model(&Rating{}).
		Where("points > ?", rating.Points).
		Count(&ahead).Error
	if err != nil {
		return nil, fmt.Errorf("rank user %d: %w", userID, err)
	}

	return &Standing{Rank: int(ahead) + 1, Points: rating.Points}, nil
}
