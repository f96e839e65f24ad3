// Package scheduler runs the periodic maintenance jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	RefreshStreaksSpec = "5 0 * * *"
	CleanupSpec        = "@hourly"
	jobTimeout         = 5 * time.Minute
)

// StreakRefresher recomputes cached streaks. *services.HabitService satisfies it.
type StreakRefresher interface {
	RefreshStreaks(ctx context.Context) (int, error)
}

// Nudger warns users about streaks ending tonight. *jobs.StreakNudger satisfies it.
type Nudger interface {
	RunDailyScan(ctx context.Context) error
}

// NotificationCleaner drops expired notifications. *services.NotificationService satisfies it.
type NotificationCleaner interface {
	DeleteExpiredNotifications(ctx context.Context) error
}

// Jobs are the scheduled tasks. Nil entries are not scheduled.
type Jobs struct {
	Streaks       StreakRefresher
	Nudger        Nudger
	Notifications NotificationCleaner
}

// Start schedules jobs in loc and starts the cron runner. The nudge runs on
// nudgeSpec. Callers stop the returned runner on shutdown.
func Start(jobs Jobs, nudgeSpec string, loc *time.Location) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))

	if jobs.Streaks != nil {
		if _, err := c.AddFunc(RefreshStreaksSpec, run("RefreshStreaks", func(ctx context.Context) error {
			_, err := jobs.Streaks.RefreshStreaks(ctx)
			return err
		})); err != nil {
			return nil, err
		}
	}

	if jobs.Nudger != nil {
		if _, err := c.AddFunc(nudgeSpec, run("StreakNudge", jobs.Nudger.RunDailyScan)); err != nil {
			return nil, err
		}
	}

	if jobs.Notifications != nil {
		if _, err := c.AddFunc(CleanupSpec, run("DeleteExpiredNotifications", jobs.Notifications.DeleteExpiredNotifications)); err != nil {
			return nil, err
		}
	}

	c.Start()
	logrus.WithField("jobs", len(c.Entries())).Info("Scheduler started")
	return c, nil
}

func run(name string, job func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if err := job(ctx); err != nil {
			logrus.WithError(err).Errorf("%s failed", name)
		}
	}
}
