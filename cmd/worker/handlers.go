package main

import (
	"github.com/hibiken/asynq"

	bookingJob "booking-backend/internal/domains/booking/job"
	discountJob "booking-backend/internal/domains/discount/job"
	"booking-backend/internal/shared"
	"booking-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	bookingConfirmed *bookingJob.BookingConfirmedHandler
	expireDiscounts  *discountJob.ExpireDiscountsHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		bookingConfirmed: bookingJob.NewBookingConfirmedHandler(c.BookingHistory),
		expireDiscounts:  discountJob.NewExpireDiscountsHandler(c.DiscountRepo),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Booking
	mux.HandleFunc(shared.TypeBookingConfirmed, h.bookingConfirmed.ProcessTask)

	// Maintenance
	mux.HandleFunc(shared.TypeExpireDiscounts, h.expireDiscounts.ProcessTask)
}
