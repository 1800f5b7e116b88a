package tasks

import (
	"fmt"

	"imovia/internal/utils/logger"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

// Scheduler handles periodic task scheduling
type Scheduler struct {
	scheduler *asynq.Scheduler
	sweepCron string
	log       *logger.Logger
}

// NewScheduler creates a new task scheduler. sweepCron is a standard
// cron expression for the orphaned-image sweep.
func NewScheduler(redisAddr, username, password string, db int, sweepCron string, log *logger.Logger) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Username: username,
			Password: password,
			DB:       db,
		},
		&asynq.SchedulerOpts{},
	)

	return &Scheduler{
		scheduler: scheduler,
		sweepCron: sweepCron,
		log:       log,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if err := s.registerTasks(); err != nil {
		return fmt.Errorf("failed to register tasks: %w", err)
	}

	s.log.Info("starting task scheduler")
	return s.scheduler.Run()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Shutdown()
	s.log.Info("task scheduler stopped")
}

// registerTasks registers all periodic tasks
func (s *Scheduler) registerTasks() error {
	// Reject a bad expression here rather than letting asynq silently
	// never fire.
	if _, err := cron.ParseStandard(s.sweepCron); err != nil {
		return fmt.Errorf("invalid sweep cron expression %q: %w", s.sweepCron, err)
	}

	task := asynq.NewTask(TaskTypeImageSweep, nil,
		asynq.Queue(QueueLow),
		asynq.Timeout(TimeoutMedium),
	)

	entryID, err := s.scheduler.Register(s.sweepCron, task)
	if err != nil {
		return fmt.Errorf("failed to register image sweep: %w", err)
	}

	s.log.Info("registered image sweep %s (%s)", entryID, s.sweepCron)
	return nil
}
