package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"booking-backend/internal/config"
	"booking-backend/internal/domains/discount/job"
	"booking-backend/internal/shared"
	"booking-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
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

// RegisterJobs registers every periodic task
func (s *Scheduler) RegisterJobs() error {
	return s.registerExpireDiscountsJob()
}

func (s *Scheduler) registerExpireDiscountsJob() error {
	if s.jobConfig.ExpireDiscountsCron == "" {
		logger.Info("[Scheduler] ExpireDiscounts job disabled", nil)
		return nil
	}

	payload, err := json.Marshal(job.ExpireDiscountsPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeExpireDiscounts, payload)

	entryID, err := s.scheduler.Register(
		s.jobConfig.ExpireDiscountsCron,
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register ExpireDiscounts job", err)
		return err
	}

	logger.Info("[Scheduler] Registered ExpireDiscounts job", map[string]interface{}{
		"entry_id": entryID,
		"cron":     s.jobConfig.ExpireDiscountsCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
