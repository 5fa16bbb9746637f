package model

// BookingConfirmedPayload is enqueued after a booking commits
type BookingConfirmedPayload struct {
	BookingID   int64   `json:"booking_id"`
	UserID      int64   `json:"user_id"`
	ForMember   bool    `json:"for_member"`
	DiscountID  *int64  `json:"discount_id,omitempty"`
	Discount    string  `json:"discount"`
	TotalAmount string  `json:"total_amount"`
	ScheduleIDs []int64 `json:"schedule_ids"`
}
