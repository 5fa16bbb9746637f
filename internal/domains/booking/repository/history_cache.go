package repository

import (
	"context"
	"fmt"
	"time"

	"booking-backend/pkg/cache"
	"booking-backend/pkg/logger"
)

const historyKeyPrefix = "booking_history"

// HistorySource is the uncached booking history
type HistorySource interface {
	// ScopeScheduleIDs returns every schedule the user booked in the scope
	ScopeScheduleIDs(ctx context.Context, userID int64, forMember bool) ([]int64, error)

	// PriorScheduleIDs returns which of requested the user booked in the scope
	PriorScheduleIDs(ctx context.Context, userID int64, forMember bool, requested []int64) ([]int64, error)
}

// CachedHistory serves booking history cache-aside.
//
// Each (user, scope) has a generation counter; cached history is stored
// under the generation it was read at and Invalidate bumps the counter. A
// lookup that read the database before a booking committed therefore writes
// its snapshot under a generation nobody reads any more.
//
// Without a cache, or when the cache errors, lookups go straight to the
// source with the requested ids.
type CachedHistory struct {
	source HistorySource
	cache  cache.Cache
	ttl    time.Duration
}

func NewCachedHistory(source HistorySource, c cache.Cache, ttl time.Duration) *CachedHistory {
	return &CachedHistory{source: source, cache: c, ttl: ttl}
}

// HistoryKey is the key prefix of a (user, scope) history
func HistoryKey(userID int64, forMember bool) string {
	scope := "self"
	if forMember {
		scope = "member"
	}
	return fmt.Sprintf("%s:%d:%s", historyKeyPrefix, userID, scope)
}

func generationKey(userID int64, forMember bool) string {
	return HistoryKey(userID, forMember) + ":gen"
}

func snapshotKey(userID int64, forMember bool, generation int64) string {
	return fmt.Sprintf("%s:v%d", HistoryKey(userID, forMember), generation)
}

// PriorScheduleIDs returns the subset of requested found in the scope history
func (h *CachedHistory) PriorScheduleIDs(ctx context.Context, userID int64, forMember bool, requested []int64) ([]int64, error) {
	if len(requested) == 0 {
		return nil, nil
	}

	if h.cache == nil {
		return h.source.PriorScheduleIDs(ctx, userID, forMember, requested)
	}

	generation, err := h.cache.GetInt(ctx, generationKey(userID, forMember))
	if err != nil {
		h.warnCache("Cache generation read failed", generationKey(userID, forMember), err)
		return h.source.PriorScheduleIDs(ctx, userID, forMember, requested)
	}

	key := snapshotKey(userID, forMember, generation)

	var history []int64
	found, err := h.cache.Get(ctx, key, &history)
	if err != nil {
		h.warnCache("Cache read failed", key, err)
		return h.source.PriorScheduleIDs(ctx, userID, forMember, requested)
	}

	if !found {
		history, err = h.load(ctx, key, userID, forMember)
		if err != nil {
			return nil, err
		}
	}

	return intersect(history, requested), nil
}

func (h *CachedHistory) load(ctx context.Context, key string, userID int64, forMember bool) ([]int64, error) {
	history, err := h.source.ScopeScheduleIDs(ctx, userID, forMember)
	if err != nil {
		return nil, err
	}

	if history == nil {
		history = []int64{}
	}

	if err := h.cache.Set(ctx, key, history, h.ttl); err != nil {
		h.warnCache("Cache write failed", key, err)
	}

	return history, nil
}

// Invalidate retires the cached scope so the next lookup sees new bookings
func (h *CachedHistory) Invalidate(ctx context.Context, userID int64, forMember bool) error {
	if h.cache == nil {
		return nil
	}

	if _, err := h.cache.Incr(ctx, generationKey(userID, forMember)); err != nil {
		return err
	}
	return nil
}

// Warm loads the current generation of the scope into the cache
func (h *CachedHistory) Warm(ctx context.Context, userID int64, forMember bool) error {
	if h.cache == nil {
		return nil
	}

	generation, err := h.cache.GetInt(ctx, generationKey(userID, forMember))
	if err != nil {
		return err
	}

	_, err = h.load(ctx, snapshotKey(userID, forMember, generation), userID, forMember)
	return err
}

func (h *CachedHistory) warnCache(msg, key string, err error) {
	logger.Warn("[BookingHistory] "+msg, map[string]interface{}{
		"key":   key,
		"error": err.Error(),
	})
}

func intersect(history, requested []int64) []int64 {
	booked := make(map[int64]struct{}, len(history))
	for _, id := range history {
		booked[id] = struct{}{}
	}

	var prior []int64
	for _, id := range requested {
		if _, ok := booked[id]; ok {
			prior = append(prior, id)
		}
	}

	return prior
}
