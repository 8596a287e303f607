package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// FollowUpJobName is the name of the prospect follow-up reminder job
const FollowUpJobName = "prospect_followup"

// followUpJobTimeout bounds a single run of the reminder sweep
const followUpJobTimeout = 2 * time.Minute

// FollowUpReminderService defines the interface for recording follow-up
// reminders. This interface allows the job to call the service without
// importing the service package directly.
type FollowUpReminderService interface {
	// RecordFollowUpReminders writes a reminder activity for every prospect
	// overdue for follow-up, at most once per prospect per day. Returns how
	// many reminders were created.
	RecordFollowUpReminders(ctx context.Context, now time.Time) (int, error)
}

// FollowUpJob sweeps prospects whose next follow-up date has passed and
// records reminder activities so they surface on the dashboard.
type FollowUpJob struct {
	clients FollowUpReminderService
	logger  *zap.Logger
}

// NewFollowUpJob creates a new prospect follow-up reminder job.
func NewFollowUpJob(clients FollowUpReminderService, logger *zap.Logger) *FollowUpJob {
	return &FollowUpJob{
		clients: clients,
		logger:  logger,
	}
}

// Run executes the reminder sweep. Called by the scheduler according to
// the configured cron expression.
func (j *FollowUpJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), followUpJobTimeout)
	defer cancel()

	start := time.Now()
	created, err := j.clients.RecordFollowUpReminders(ctx, start)
	if err != nil {
		j.logger.Error("follow-up reminder sweep failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("follow-up reminder sweep completed",
		zap.Int("reminders_created", created),
		zap.Duration("duration", time.Since(start)))
}

// RegisterFollowUpJob registers the follow-up job with the scheduler.
func RegisterFollowUpJob(scheduler *Scheduler, clients FollowUpReminderService, logger *zap.Logger, cronExpr string) error {
	job := NewFollowUpJob(clients, logger)
	return scheduler.AddJob(FollowUpJobName, cronExpr, job.Run)
}
