package jobs

import (
	"context"
	"time"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultDispatchSchedule drains the outbox every five seconds.
const DefaultDispatchSchedule = "@every 5s"

// NotificationDispatcher is the part of DispatchNotificationsCommandHandler the job needs.
type NotificationDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) (commands.DispatchReport, error)
}

// NotificationDispatchJob periodically hands pending outbox messages to the notifier.
// A run that is still in progress when the next tick fires makes that tick a no-op.
type NotificationDispatchJob struct {
	dispatcher NotificationDispatcher
	cmd        commands.DispatchNotificationsCommand
	schedule   string
	timeout    time.Duration
	cron       *cron.Cron
	logger     *zap.Logger
}

// NewNotificationDispatchJob creates a job draining batchSize messages per run on schedule
// (standard cron spec with seconds, or a descriptor such as "@every 5s").
func NewNotificationDispatchJob(
	dispatcher NotificationDispatcher,
	schedule string,
	batchSize int,
	logger *zap.Logger,
) (*NotificationDispatchJob, error) {
	cmd, err := commands.NewDispatchNotificationsCommand(batchSize)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultDispatchSchedule
	}

	logger = logger.With(zap.String("component", "notification_dispatch_job"))
	cronLogger := zapCronLogger{logger: logger}

	return &NotificationDispatchJob{
		dispatcher: dispatcher,
		cmd:        cmd,
		schedule:   schedule,
		timeout:    time.Minute,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
	}, nil
}

// Start schedules the job.
func (j *NotificationDispatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("notification dispatch job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop unschedules the job and waits for a running dispatch to finish.
func (j *NotificationDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("notification dispatch job stopped")
}

func (j *NotificationDispatchJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	report, err := j.dispatcher.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.Error("notification dispatch failed", zap.Error(err))
		return
	}
	if report.Messages == 0 {
		return
	}

	j.logger.Info("notifications dispatched",
		zap.Int("messages", report.Messages),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
	)
}

// zapCronLogger lets cron report through zap.
type zapCronLogger struct {
	logger *zap.Logger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, zap.Any("details", keysAndValues))
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, zap.Error(err), zap.Any("details", keysAndValues))
}
