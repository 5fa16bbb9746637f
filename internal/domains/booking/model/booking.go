package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking is one confirmed checkout. ForMember marks bookings made on behalf
// of a family member rather than the account owner.
type Booking struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	BookingDate time.Time       `json:"booking_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Discount    decimal.Decimal `json:"discount"`
	ForMember   bool            `json:"for_member"`
	Items       []BookingItem   `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
}

type BookingItem struct {
	ID         int64 `json:"id"`
	BookingID  int64 `json:"booking_id"`
	ScheduleID int64 `json:"schedule_id"`
}

// ScheduleIDs lists the booked schedules in item order
func (b *Booking) ScheduleIDs() []int64 {
	ids := make([]int64, 0, len(b.Items))
	for _, item := range b.Items {
		ids = append(ids, item.ScheduleID)
	}
	return ids
}
