package main

import (
	"log"

	"github.com/hibiken/asynq"

	"booking-backend/internal/config"
	"booking-backend/internal/shared/utils"
)

// Config holds the worker's runtime settings
type Config struct {
	Redis       asynq.RedisClientOpt
	Jobs        config.JobConfig
	HealthAddr  string
	ServiceName string
}

// loadConfig derives the worker settings from the application config
func loadConfig(appCfg *config.Config) *Config {
	cfg := &Config{
		Redis: asynq.RedisClientOpt{
			Addr:     appCfg.Redis.Host,
			Password: appCfg.Redis.Password,
			DB:       appCfg.Redis.DB,
		},
		Jobs:        appCfg.Jobs,
		HealthAddr:  ":" + utils.GetEnvVariable("WORKER_HEALTH_PORT", "9999"),
		ServiceName: "booking-worker",
	}

	log.Printf("[Config] Redis: %s, concurrency: %d, expire-discounts cron: %q",
		cfg.Redis.Addr, cfg.Jobs.Concurrency, cfg.Jobs.ExpireDiscountsCron)

	return cfg
}
