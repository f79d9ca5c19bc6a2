// Package reminder manages daily training reminders and the one-shot
// feedback notice sent two days after registration. Delivery failures are
// logged and dropped; the next scheduled fire is the retry.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"focusbot/internal/metrics"
	"focusbot/internal/store"
)

var (
	// ErrAlreadyEnabled is returned when the user's reminder is already on.
	ErrAlreadyEnabled = errors.New("reminder already enabled")

	// ErrAlreadyDisabled is returned when the user's reminder is already off.
	ErrAlreadyDisabled = errors.New("reminder already disabled")
)

// Survey notices go out at 19:40 two days after registration.
const (
	surveyDelay  = 48 * time.Hour
	surveyHour   = 19
	surveyMinute = 40
)

// Notifier delivers reminder and survey messages. Implemented by the bot.
type Notifier interface {
	SendReminder(userID int64) error
	SendSurvey(userID int64) error
}

// Service owns reminder state and its scheduled triggers.
type Service struct {
	registry  TriggerRegistry
	reminders store.ReminderRepo
	users     store.UserRepo
	notifier  Notifier
	metrics   metrics.Collector
	log       *zap.SugaredLogger
	now       func() time.Time
}

// New creates a reminder Service.
func New(
	registry TriggerRegistry,
	reminders store.ReminderRepo,
	users store.UserRepo,
	notifier Notifier,
	collector metrics.Collector,
	log *zap.SugaredLogger,
) *Service {
	return &Service{
		registry:  registry,
		reminders: reminders,
		users:     users,
		notifier:  notifier,
		metrics:   collector,
		log:       log,
		now:       time.Now,
	}
}

func reminderTag(userID int64) string { return fmt.Sprintf("reminder:%d", userID) }
func surveyTag(userID int64) string   { return fmt.Sprintf("survey:%d", userID) }

// Enable turns the user's daily reminder on at the given "HH:MM".
func (s *Service) Enable(ctx context.Context, userID int64, at string) error {
	tod, err := ParseTimeOfDay(at)
	if err != nil {
		return err
	}

	existing, err := s.reminders.Get(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrReminderNotFound) {
		return err
	}
	if existing != nil && existing.Enabled {
		return ErrAlreadyEnabled
	}

	tag := reminderTag(userID)
	if err := s.reminders.Upsert(ctx, &store.Reminder{
		UserID:     userID,
		JobID:      tag,
		RemindTime: tod.String(),
		Enabled:    true,
	}); err != nil {
		return err
	}

	if err := s.registry.ScheduleDaily(tag, tod, s.fireReminder(userID)); err != nil {
		return err
	}

	s.log.Infow("reminder enabled", "user_id", userID, "at", tod.String())
	return nil
}

// Disable turns the user's daily reminder off. The stored time survives
// for the next enable.
func (s *Service) Disable(ctx context.Context, userID int64) error {
	existing, err := s.reminders.Get(ctx, userID)
	if errors.Is(err, store.ErrReminderNotFound) {
		return ErrAlreadyDisabled
	}
	if err != nil {
		return err
	}
	if !existing.Enabled {
		return ErrAlreadyDisabled
	}

	if err := s.reminders.SetEnabled(ctx, userID, false); err != nil {
		return err
	}
	s.registry.Cancel(reminderTag(userID))

	s.log.Infow("reminder disabled", "user_id", userID)
	return nil
}

// Reschedule moves the user's reminder to a new "HH:MM". On a disabled
// reminder only the stored time changes; the trigger appears on enable.
func (s *Service) Reschedule(ctx context.Context, userID int64, at string) error {
	tod, err := ParseTimeOfDay(at)
	if err != nil {
		return err
	}

	existing, err := s.reminders.Get(ctx, userID)
	if err != nil {
		return err
	}

	tag := reminderTag(userID)
	if err := s.reminders.SetTime(ctx, userID, tod.String(), tag); err != nil {
		return err
	}

	if existing.Enabled {
		if err := s.registry.ScheduleDaily(tag, tod, s.fireReminder(userID)); err != nil {
			return err
		}
	}

	s.log.Infow("reminder rescheduled", "user_id", userID, "at", tod.String())
	return nil
}

// ScheduleSurvey arms the one-shot feedback notice for a fresh registration.
func (s *Service) ScheduleSurvey(userID int64, registeredAt time.Time) error {
	at := surveyFireTime(registeredAt, s.now())
	return s.registry.ScheduleOnce(surveyTag(userID), at, s.fireSurvey(userID))
}

// RestoreAll re-arms triggers after a restart: every enabled reminder and
// every pending survey notice. Returns the number of reminders restored.
func (s *Service) RestoreAll(ctx context.Context) (int, error) {
	enabled, err := s.reminders.AllEnabled(ctx)
	if err != nil {
		return 0, err
	}

	restored := 0
	for _, rem := range enabled {
		tod, err := ParseTimeOfDay(rem.RemindTime)
		if err != nil {
			s.log.Warnw("skipping reminder with bad stored time",
				"user_id", rem.UserID, "time", rem.RemindTime)
			continue
		}
		if err := s.registry.ScheduleDaily(reminderTag(rem.UserID), tod, s.fireReminder(rem.UserID)); err != nil {
			return restored, err
		}
		restored++
	}

	// minAge 0 lists everyone still waiting for the notice.
	pending, err := s.users.DueForSurvey(ctx, s.now(), 0)
	if err != nil {
		return restored, err
	}
	for _, user := range pending {
		if err := s.ScheduleSurvey(user.ID, user.CreatedAt); err != nil {
			return restored, err
		}
	}

	s.log.Infow("triggers restored", "reminders", restored, "surveys", len(pending))
	return restored, nil
}

func (s *Service) fireReminder(userID int64) func() {
	return func() {
		s.metrics.RecordReminderFired()
		if err := s.notifier.SendReminder(userID); err != nil {
			s.log.Warnw("reminder delivery failed", "user_id", userID, "error", err)
		}
	}
}

func (s *Service) fireSurvey(userID int64) func() {
	return func() {
		if err := s.notifier.SendSurvey(userID); err != nil {
			s.log.Warnw("survey delivery failed", "user_id", userID, "error", err)
			return
		}
		s.metrics.RecordSurveySent()
		if err := s.users.MarkSurveySent(context.Background(), userID); err != nil {
			s.log.Errorw("marking survey sent failed", "user_id", userID, "error", err)
		}
	}
}

// surveyFireTime places the notice at 19:40 two days after registration,
// or at the next 19:40 when that moment already passed.
func surveyFireTime(registeredAt, now time.Time) time.Time {
	at := time.Date(
		registeredAt.Year(), registeredAt.Month(), registeredAt.Day(),
		surveyHour, surveyMinute, 0, 0, registeredAt.Location(),
	).Add(surveyDelay)

	if !at.After(now) {
		at = time.Date(now.Year(), now.Month(), now.Day(),
			surveyHour, surveyMinute, 0, 0, now.Location())
		if !at.After(now) {
			at = at.AddDate(0, 0, 1)
		}
	}
	return at
}
