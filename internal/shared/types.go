package shared

// Task types handled by the worker
const (
	TypeBookingConfirmed = "booking:confirmed"
	TypeExpireDiscounts  = "discount:expire"
)

// Queues
const (
	QueueBooking = "booking"
	QueueDefault = "default"
)
