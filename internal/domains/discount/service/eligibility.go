package service

import (
	"context"
	"fmt"
)

// BookingHistory answers which of the requested schedules the user already
// booked. forMember selects bookings made for family members (true) or for
// the account owner (false).
type BookingHistory interface {
	PriorScheduleIDs(ctx context.Context, userID int64, forMember bool, requested []int64) ([]int64, error)
}

// Intersects reports whether any requested schedule appears in history
func Intersects(history, requested []int64) bool {
	if len(history) == 0 || len(requested) == 0 {
		return false
	}

	seen := make(map[int64]struct{}, len(history))
	for _, id := range history {
		seen[id] = struct{}{}
	}

	for _, id := range requested {
		if _, ok := seen[id]; ok {
			return true
		}
	}

	return false
}

// EligibilityEvaluator decides whether a booking earns a rebate.
//
// A family-member booking qualifies when anyone in the family already booked
// one of the requested schedules. A booking for the owner qualifies when the
// owner already booked one of them for themselves.
type EligibilityEvaluator struct {
	history BookingHistory
}

func NewEligibilityEvaluator(history BookingHistory) *EligibilityEvaluator {
	return &EligibilityEvaluator{history: history}
}

func (e *EligibilityEvaluator) IsEligible(ctx context.Context, userID int64, forFamilyMember bool, requested []int64) (bool, error) {
	if len(requested) == 0 {
		return false, nil
	}

	prior, err := e.history.PriorScheduleIDs(ctx, userID, forFamilyMember, requested)
	if err != nil {
		scope := "recurring"
		if forFamilyMember {
			scope = "family"
		}
		return false, fmt.Errorf("load %s booking history: %w", scope, err)
	}

	return Intersects(prior, requested), nil
}
