package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"booking-backend/internal/config"
	infraCache "booking-backend/internal/infrastructure/cache"
	"booking-backend/internal/infrastructure/database"
	"booking-backend/internal/infrastructure/queue"
	"booking-backend/pkg/cache"

	"booking-backend/internal/domains/user"
	userHandler "booking-backend/internal/domains/user/handler"
	userRepo "booking-backend/internal/domains/user/repository"
	userService "booking-backend/internal/domains/user/service"

	"booking-backend/internal/domains/member"
	memberHandler "booking-backend/internal/domains/member/handler"
	memberRepo "booking-backend/internal/domains/member/repository"
	memberService "booking-backend/internal/domains/member/service"

	"booking-backend/internal/domains/schedule"
	scheduleHandler "booking-backend/internal/domains/schedule/handler"
	scheduleRepo "booking-backend/internal/domains/schedule/repository"
	scheduleService "booking-backend/internal/domains/schedule/service"

	discountHandler "booking-backend/internal/domains/discount/handler"
	discountRepo "booking-backend/internal/domains/discount/repository"
	discountService "booking-backend/internal/domains/discount/service"

	bookingHandler "booking-backend/internal/domains/booking/handler"
	bookingRepo "booking-backend/internal/domains/booking/repository"
	bookingService "booking-backend/internal/domains/booking/service"
)

// Container holds the application's dependency graph.
// Order of initialization: Config -> Infrastructure -> Repositories ->
// Services -> Handlers.
type Container struct {
	// Infrastructure
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache // nil when Redis is unreachable
	Queue  *queue.Client

	// Repositories
	UserRepo       user.Repository
	MemberRepo     member.Repository
	ScheduleRepo   schedule.Repository
	DiscountRepo   discountRepo.DiscountRepository
	BookingRepo    bookingRepo.BookingRepository
	BookingHistory *bookingRepo.CachedHistory

	// Services
	UserService     user.Service
	MemberService   member.Service
	ScheduleService schedule.Service
	DiscountService discountService.ServiceInterface
	BookingService  bookingService.ServiceInterface

	// Handlers
	UserHandler     *userHandler.UserHandler
	MemberHandler   *memberHandler.MemberHandler
	ScheduleHandler *scheduleHandler.ScheduleHandler
	DiscountHandler *discountHandler.DiscountHandler
	BookingHandler  *bookingHandler.BookingHandler
}

// NewContainer builds the whole dependency graph
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	log.Println("📋 Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	if err := c.initDatabase(); err != nil {
		return nil, err
	}

	c.initCache()

	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	log.Println("✅ Task queue client ready")

	log.Println("📦 Initializing repositories...")
	c.initRepositories()
	log.Println("✅ Repositories initialized")

	log.Println("⚙️  Initializing services...")
	c.initServices()
	log.Println("✅ Services initialized")

	log.Println("🎯 Initializing handlers...")
	c.initHandlers()
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initDatabase() error {
	log.Println("🗄️  Connecting to PostgreSQL...")

	db := database.NewPostgresDB(c.Config.Database.Pool)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	if c.Config.Database.RunMigrations {
		if err := database.Migrate(ctx, db.Pool); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		log.Println("✅ Migrations applied")
	}

	c.DB = db
	log.Println("✅ Database connected")
	return nil
}

// initCache connects Redis. A failure is not fatal: booking history is then
// read straight from PostgreSQL.
func (c *Container) initCache() {
	log.Println("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	rc, ok := redisCache.(*infraCache.RedisCache)
	if !ok {
		c.Cache = redisCache
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.Connect(ctx); err != nil {
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
		_ = rc.Close()
		return
	}

	c.Cache = redisCache
	log.Println("✅ Redis connected")
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.MemberRepo = memberRepo.NewPostgresRepository(pool)
	c.ScheduleRepo = scheduleRepo.NewPostgresRepository(pool)
	c.DiscountRepo = discountRepo.NewPostgresRepository(pool)
	c.BookingRepo = bookingRepo.NewPostgresRepository(pool)

	c.BookingHistory = bookingRepo.NewCachedHistory(
		c.BookingRepo,
		c.Cache,
		c.Config.Booking.HistoryCacheTTL,
	)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo)
	c.MemberService = memberService.NewMemberService(c.MemberRepo)
	c.ScheduleService = scheduleService.NewScheduleService(c.ScheduleRepo)

	c.DiscountService = discountService.NewDiscountService(
		c.DiscountRepo,
		c.BookingHistory,
	)

	c.BookingService = bookingService.NewBookingService(
		c.BookingRepo,
		c.DiscountRepo,
		c.BookingHistory,
		c.Queue,
		bookingService.Options{
			DecrementOnlyWithRebate: c.Config.Booking.DecrementOnlyWithRebate,
		},
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.MemberHandler = memberHandler.NewMemberHandler(c.MemberService)
	c.ScheduleHandler = scheduleHandler.NewScheduleHandler(c.ScheduleService)
	c.DiscountHandler = discountHandler.NewDiscountHandler(c.DiscountService)
	c.BookingHandler = bookingHandler.NewBookingHandler(c.BookingService)
}

// Cleanup releases connections on shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Printf("⚠️  Failed to close queue client: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
		log.Println("✅ Database connections closed")
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		} else {
			log.Println("✅ Redis connections closed")
		}
	}

	log.Println("✅ Container cleanup completed")
}
