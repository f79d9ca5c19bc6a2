// Package store persists users, reminders and ratings behind small
// repository interfaces. SQLite serves single-instance deployments and
// tests; a postgres DSN switches the driver without touching callers.
package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store owns the database handle and hands out repositories.
type Store struct {
	db *gorm.DB
}

// Open connects to the database at dsn and runs auto-migration. A DSN
// starting with "postgres://" or containing "host=" selects postgres;
// anything else is treated as a SQLite file path.
func Open(dsn string) (*Store, error) {
	dialector, err := dialectorFor(dsn)
	if err != nil {
		return nil, err
	}

	gormLog := gormlogger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&User{}, &Reminder{}, &Rating{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db}, nil
}

func dialectorFor(dsn string) (gorm.Dialector, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host=") {
		return postgres.Open(dsn), nil
	}

	if dir := filepath.Dir(dsn); dir != "." && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	return sqlite.Open(dsn), nil
}

// DefaultPath returns the SQLite location used when no DSN is configured.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "focusbot.db"
	}
	return filepath.Join(dir, "focusbot", "focusbot.db")
}

// DB exposes the underlying handle for raw queries.
func (s *Store) DB() *gorm.DB { return s.db }

// Close releases the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Users returns a UserRepo backed by this store.
func (s *Store) Users() UserRepo { return &userRepo{db: s.db} }

// Reminders returns a ReminderRepo backed by this store.
func (s *Store) Reminders() ReminderRepo { return &reminderRepo{db: s.db} }

// Ratings returns a RatingRepo backed by this store.
func (s *Store) Ratings() RatingRepo { return &ratingRepo{db: s.db} }
