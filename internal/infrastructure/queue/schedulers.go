package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"github.com/MiguelRodac/api-books/internal/config"
	"github.com/MiguelRodac/api-books/internal/shared"
	"github.com/MiguelRodac/api-books/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerReconcilePublishedCountsJob()
}

// ================================================
// JOB: Reconcile Published Counts (Daily at midnight)
// ================================================
// Counter là denormalized - drift có thể xảy ra khi sync reconcile
// fail hoặc data bị sửa ngoài API. Batch này đưa mọi counter về đúng.
func (s *Scheduler) registerReconcilePublishedCountsJob() error {
	task := asynq.NewTask(shared.TypeReconcilePublishedCounts, nil)

	_, err := s.scheduler.Register(
		s.jobConfig.ReconcileSchedule, // Default: "0 0 * * *" - daily at midnight
		task,
		asynq.Queue(shared.QueueAuthor),
		asynq.MaxRetry(2),
		asynq.Timeout(s.jobConfig.ReconcileTimeout),
	)

	if err != nil {
		logger.Error("Failed to register ReconcilePublishedCounts job", err)
		return err
	}

	logger.Info("✓ Registered ReconcilePublishedCounts: daily at midnight", map[string]interface{}{
		"schedule": s.jobConfig.ReconcileSchedule,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
