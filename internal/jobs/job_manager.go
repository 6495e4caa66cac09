package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Config holds the scheduling settings of the background jobs.
type Config struct {
	DispatchSchedule  string
	DispatchBatchSize int
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	notificationDispatchJob *NotificationDispatchJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(dispatcher NotificationDispatcher, cfg Config, logger *zap.Logger) (*JobManager, error) {
	dispatchJob, err := NewNotificationDispatchJob(dispatcher, cfg.DispatchSchedule, cfg.DispatchBatchSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification dispatch job: %w", err)
	}

	return &JobManager{
		notificationDispatchJob: dispatchJob,
	}, nil
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification dispatch job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.notificationDispatchJob.Stop()
}
