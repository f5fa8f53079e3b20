package cron

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/awave-app/backend/internal/repositories"
)

// RetentionJob purges notifications older than the retention window,
// regardless of read state. Failures are logged and the job simply waits for
// its next scheduled tick.
type RetentionJob struct {
	notifications repositories.NotificationRepository
	maxAge        time.Duration
	now           func() time.Time
	log           zerolog.Logger
}

// NewRetentionJob creates a RetentionJob keeping notifications for
// retentionDays days
func NewRetentionJob(notifications repositories.NotificationRepository, retentionDays int, log zerolog.Logger) *RetentionJob {
	return &RetentionJob{
		notifications: notifications,
		maxAge:        time.Duration(retentionDays) * 24 * time.Hour,
		now:           time.Now,
		log:           log,
	}
}

// Run executes one purge pass
func (j *RetentionJob) Run() {
	cutoff := j.now().Add(-j.maxAge)
	deleted, err := j.notifications.DeleteOlderThan(cutoff)
	if err != nil {
		j.log.Error().Err(err).Msg("notification retention run failed")
		return
	}
	j.log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("notification retention run completed")
}

// StartScheduler registers the retention job on a cron schedule and starts it
// in the background. The returned scheduler can be stopped on shutdown.
func StartScheduler(job *RetentionJob, cronExpr, timezone string) (*gocron.Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid retention timezone %q: %w", timezone, err)
	}

	s := gocron.NewScheduler(loc)
	if _, err := s.Cron(cronExpr).Do(job.Run); err != nil {
		return nil, fmt.Errorf("invalid retention cron expression %q: %w", cronExpr, err)
	}
	s.StartAsync()
	return s, nil
}
