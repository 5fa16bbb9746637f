package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-backend/internal/domains/booking/model"
	"booking-backend/internal/shared"
)

type warmCall struct {
	userID    int64
	forMember bool
}

type fakeWarmer struct {
	calls []warmCall
	err   error
}

func (f *fakeWarmer) Warm(_ context.Context, userID int64, forMember bool) error {
	f.calls = append(f.calls, warmCall{userID, forMember})
	return f.err
}

func newTask(t *testing.T, payload model.BookingConfirmedPayload) *asynq.Task {
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeBookingConfirmed, raw)
}

func TestBookingConfirmedHandler(t *testing.T) {
	warmer := &fakeWarmer{}
	h := NewBookingConfirmedHandler(warmer)

	err := h.ProcessTask(context.Background(), newTask(t, model.BookingConfirmedPayload{
		BookingID:   3,
		UserID:      7,
		ForMember:   true,
		Discount:    "400",
		ScheduleIDs: []int64{1, 2},
	}))

	require.NoError(t, err)
	assert.Equal(t, []warmCall{{7, true}}, warmer.calls)
}

func TestBookingConfirmedHandler_WarmFailureRetries(t *testing.T) {
	h := NewBookingConfirmedHandler(&fakeWarmer{err: errors.New("redis down")})

	err := h.ProcessTask(context.Background(), newTask(t, model.BookingConfirmedPayload{UserID: 7}))

	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestBookingConfirmedHandler_BadPayloadSkipsRetry(t *testing.T) {
	warmer := &fakeWarmer{}
	h := NewBookingConfirmedHandler(warmer)

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeBookingConfirmed, []byte("{")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, warmer.calls)
}
