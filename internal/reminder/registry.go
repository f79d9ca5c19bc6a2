package reminder

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// TriggerRegistry schedules and cancels tagged jobs. Tags are stable per
// user, so enabling a reminder twice replaces rather than duplicates.
type TriggerRegistry interface {
	// ScheduleDaily fires fn every day at the given wall-clock time.
	ScheduleDaily(tag string, at TimeOfDay, fn func()) error

	// ScheduleOnce fires fn once at the given instant.
	ScheduleOnce(tag string, at time.Time, fn func()) error

	// Cancel removes all jobs carrying the tag.
	Cancel(tag string)

	// Start begins executing scheduled jobs.
	Start()

	// Shutdown stops the scheduler and waits for running jobs.
	Shutdown() error
}

// gocronRegistry implements TriggerRegistry on a gocron scheduler.
type gocronRegistry struct {
	scheduler gocron.Scheduler
}

// NewRegistry creates a TriggerRegistry. Pass the bot's display timezone;
// nil uses the local one.
func NewRegistry(loc *time.Location) (TriggerRegistry, error) {
	opts := []gocron.SchedulerOption{}
	if loc != nil {
		opts = append(opts, gocron.WithLocation(loc))
	}

	scheduler, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &gocronRegistry{scheduler: scheduler}, nil
}

func (r *gocronRegistry) ScheduleDaily(tag string, at TimeOfDay, fn func()) error {
	r.Cancel(tag)

	_, err := r.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(
			gocron.NewAtTime(uint(at.Hour), uint(at.Minute), 0),
		)),
		gocron.NewTask(fn),
		gocron.WithTags(tag),
	)
	if err != nil {
		return fmt.Errorf("schedule daily job %s: %w", tag, err)
	}
	return nil
}

func (r *gocronRegistry) ScheduleOnce(tag string, at time.Time, fn func()) error {
	r.Cancel(tag)

	_, err := r.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(at)),
		gocron.NewTask(fn),
		gocron.WithTags(tag),
	)
	if err != nil {
		return fmt.Errorf("schedule one-time job %s: %w", tag, err)
	}
	return nil
}

func (r *gocronRegistry) Cancel(tag string) {
	r.scheduler.RemoveByTags(tag)
}

func (r *gocronRegistry) Start() {
	r.scheduler.Start()
}

func (r *gocronRegistry) Shutdown() error {
	return r.scheduler.Shutdown()
}
