package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"booking-backend/internal/infrastructure/database"
)

// Config holds the whole application configuration.
// It is populated from environment variables.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Booking   BookingConfig
	Jobs      JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	// Pool is what the pgx pool connects with, see LoadDatabaseConfig
	Pool *database.DBConfig
	// RunMigrations applies the embedded schema on start-up
	RunMigrations bool
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// RateLimitConfig limits the public apply-discount endpoint per client
type RateLimitConfig struct {
	ApplyDiscountPerMinute int
	ApplyDiscountBurst     int
}

type BookingConfig struct {
	// DecrementOnlyWithRebate skips the remaining-uses decrement when the
	// confirmed booking carries a zero rebate. Off by default.
	DecrementOnlyWithRebate bool
	HistoryCacheTTL         time.Duration
	// EnqueueTimeout bounds the post-commit task enqueue
	EnqueueTimeout time.Duration
}

// JobConfig holds the worker's periodic job schedules; an empty cron
// disables the job
type JobConfig struct {
	ExpireDiscountsCron string
	Concurrency         int
}

// Load reads the config from environment variables
func Load() (*Config, error) {
	historyTTL, err := time.ParseDuration(getEnv("BOOKING_HISTORY_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_HISTORY_CACHE_TTL: %w", err)
	}

	enqueueTimeout, err := time.ParseDuration(getEnv("BOOKING_ENQUEUE_TIMEOUT", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_ENQUEUE_TIMEOUT: %w", err)
	}

	pool, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Booking API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Pool:          pool,
			RunMigrations: getEnvBool("DB_RUN_MIGRATIONS", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			ApplyDiscountPerMinute: getEnvInt("RATE_LIMIT_APPLY_DISCOUNT_PER_MINUTE", 100),
			ApplyDiscountBurst:     getEnvInt("RATE_LIMIT_APPLY_DISCOUNT_BURST", 100),
		},
		Booking: BookingConfig{
			DecrementOnlyWithRebate: getEnvBool("BOOKING_DECREMENT_ONLY_WITH_REBATE", false),
			HistoryCacheTTL:         historyTTL,
			EnqueueTimeout:          enqueueTimeout,
		},
		Jobs: JobConfig{
			ExpireDiscountsCron: cronOrDisabled(getEnv("JOB_EXPIRE_DISCOUNTS_CRON", "5 0 * * *")),
			Concurrency:         getEnvInt("WORKER_CONCURRENCY", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config is usable
func (c *Config) Validate() error {
	if c.RateLimit.ApplyDiscountPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_APPLY_DISCOUNT_PER_MINUTE must be positive")
	}
	if c.RateLimit.ApplyDiscountBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_APPLY_DISCOUNT_BURST must be positive")
	}

	if c.Jobs.Concurrency <= 0 {
		return fmt.Errorf("WORKER_CONCURRENCY must be positive")
	}

	if c.Booking.EnqueueTimeout <= 0 {
		return fmt.Errorf("BOOKING_ENQUEUE_TIMEOUT must be positive")
	}

	if c.Database.Pool == nil {
		return fmt.Errorf("database pool config is missing")
	}
	if c.Database.Pool.MinConns > c.Database.Pool.MaxConns {
		return fmt.Errorf("DB_MIN_CONNECTIONS must not exceed DB_MAX_CONNECTIONS")
	}

	if c.App.Environment == "production" {
		if c.Database.Pool.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// cronOrDisabled maps "off" to the empty (disabled) schedule
func cronOrDisabled(cron string) string {
	if cron == "off" {
		return ""
	}
	return cron
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
