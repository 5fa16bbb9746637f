package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"booking-backend/internal/shared/middleware"
	"booking-backend/pkg/container"
)

// SetupRouter wires every route. The returned limiter must be stopped on
// shutdown.
func SetupRouter(c *container.Container) (*gin.Engine, *middleware.RateLimiter) {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	limiter := middleware.NewRateLimiter(
		c.Config.RateLimit.ApplyDiscountPerMinute,
		c.Config.RateLimit.ApplyDiscountBurst,
	)

	router.GET("/health", healthCheckHandler(c))

	setupUserRoutes(router, c)
	setupMemberRoutes(router, c)
	setupScheduleRoutes(router, c)
	setupDiscountRoutes(router, c, limiter)
	setupBookingRoutes(router, c)

	return router, limiter
}

func setupUserRoutes(r *gin.Engine, c *container.Container) {
	users := r.Group("/user")
	{
		users.POST("/create-user", c.UserHandler.Create)
		users.GET("/view", c.UserHandler.List)
	}
}

func setupMemberRoutes(r *gin.Engine, c *container.Container) {
	members := r.Group("/member")
	{
		members.POST("/create-member", c.MemberHandler.Create)
		members.GET("/view", c.MemberHandler.List)
		members.GET("/view/:id", c.MemberHandler.ListByUser)
	}
}

func setupScheduleRoutes(r *gin.Engine, c *container.Container) {
	schedules := r.Group("/schedule")
	{
		schedules.POST("/create-schedule", c.ScheduleHandler.Create)
		schedules.GET("/view", c.ScheduleHandler.List)
	}
}

func setupDiscountRoutes(r *gin.Engine, c *container.Container, limiter *middleware.RateLimiter) {
	discounts := r.Group("/discount")
	{
		discounts.POST("/create-discount", c.DiscountHandler.CreateDiscount)
		discounts.GET("/view", c.DiscountHandler.ListDiscounts)
		discounts.GET("/export", c.DiscountHandler.ExportDiscounts)
		discounts.GET("/apply-discount", limiter.Middleware(), c.DiscountHandler.ApplyDiscount)
	}
}

func setupBookingRoutes(r *gin.Engine, c *container.Container) {
	bookings := r.Group("/booking")
	{
		bookings.POST("/confirm", c.BookingHandler.Confirm)
	}
}

// healthCheckHandler reports 503 when PostgreSQL is unreachable. Redis is
// optional and only degrades the status.
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"services":  gin.H{},
		}
		if appCtx.Config != nil {
			health["version"] = appCtx.Config.App.Version
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
