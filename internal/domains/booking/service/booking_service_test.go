package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booking-backend/internal/domains/booking/model"
	discountModel "booking-backend/internal/domains/discount/model"
	"booking-backend/internal/shared"
	"booking-backend/pkg/database"
)

type fakeTx struct {
	pgx.Tx
	staged []*model.Booking
}

type fakeRepo struct {
	mu        sync.Mutex
	nextID    int64
	committed []*model.Booking
	createErr error
}

func (f *fakeRepo) WithTx(_ context.Context, fn database.TxFunc) error {
	tx := &fakeTx{}
	if err := fn(tx); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = append(f.committed, tx.staged...)
	return nil
}

func (f *fakeRepo) CreateWithTx(_ context.Context, tx pgx.Tx, b *model.Booking, scheduleIDs []int64) error {
	if f.createErr != nil {
		return f.createErr
	}

	b.ID = atomic.AddInt64(&f.nextID, 1)
	for _, id := range scheduleIDs {
		b.Items = append(b.Items, model.BookingItem{BookingID: b.ID, ScheduleID: id})
	}

	ftx := tx.(*fakeTx)
	ftx.staged = append(ftx.staged, b)
	return nil
}

func (f *fakeRepo) PriorScheduleIDs(context.Context, int64, bool, []int64) ([]int64, error) {
	return nil, nil
}

func (f *fakeRepo) ScopeScheduleIDs(context.Context, int64, bool) ([]int64, error) {
	return nil, nil
}

func (f *fakeRepo) committedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.committed)
}

// fakeDiscounts decrements under a lock, like the conditional UPDATE does
type fakeDiscounts struct {
	mu        sync.Mutex
	remaining map[int64]int
	calls     int
}

func (f *fakeDiscounts) DecrementRemainingUses(_ context.Context, _ pgx.Tx, id int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.remaining[id] <= 0 {
		return 0, discountModel.ErrDiscountNotFound
	}
	f.remaining[id]--
	return f.remaining[id], nil
}

type recordingHistory struct {
	mu      sync.Mutex
	dropped []string
}

func (r *recordingHistory) Invalidate(_ context.Context, userID int64, forMember bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	scope := "self"
	if forMember {
		scope = "member"
	}
	r.dropped = append(r.dropped, scope)
	return nil
}

type recordingQueue struct {
	mu       sync.Mutex
	payloads []model.BookingConfirmedPayload
	err      error
}

func (q *recordingQueue) Enqueue(_ context.Context, taskType string, payload interface{}, _ ...asynq.Option) error {
	if q.err != nil {
		return q.err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if taskType == shared.TypeBookingConfirmed {
		q.payloads = append(q.payloads, payload.(model.BookingConfirmedPayload))
	}
	return nil
}

func int64Ptr(v int64) *int64 { return &v }

func confirmRequest(discountID *int64, discount string) *model.ConfirmBookingRequest {
	return &model.ConfirmBookingRequest{
		UserID:          7,
		TotalAmount:     decimal.NewFromInt(2000),
		Discount:        decimal.RequireFromString(discount),
		DiscountID:      discountID,
		ForFamilyMember: true,
		ScheduleIDs:     []int64{1, 2},
	}
}

func requireBookingError(t *testing.T, err error, code model.ErrorCode, status int) {
	t.Helper()
	var bErr *model.BookingError
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, code, bErr.Code)
	assert.Equal(t, status, bErr.HTTPStatus)
}

func TestConfirm_CreatesBookingAndTakesOneUse(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	discounts := &fakeDiscounts{remaining: map[int64]int{1: 10}}
	history := &recordingHistory{}
	queue := &recordingQueue{}

	svc := NewBookingService(repo, discounts, history, queue, Options{})
	result, err := svc.Confirm(ctx, confirmRequest(int64Ptr(1), "400"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Booking.ID)
	assert.Len(t, result.Booking.Items, 2)
	require.NotNil(t, result.RemainingUses)
	assert.Equal(t, 9, *result.RemainingUses)
	assert.Equal(t, 1, repo.committedCount())

	assert.Equal(t, []string{"member"}, history.dropped)
	require.Len(t, queue.payloads, 1)
	assert.Equal(t, []int64{1, 2}, queue.payloads[0].ScheduleIDs)
	assert.Equal(t, "400", queue.payloads[0].Discount)
	assert.True(t, queue.payloads[0].ForMember)
}

func TestConfirm_WithoutDiscount(t *testing.T) {
	repo := &fakeRepo{}
	discounts := &fakeDiscounts{remaining: map[int64]int{}}

	svc := NewBookingService(repo, discounts, nil, nil, Options{})
	result, err := svc.Confirm(context.Background(), confirmRequest(nil, "0"))

	require.NoError(t, err)
	assert.Nil(t, result.RemainingUses)
	assert.Zero(t, discounts.calls)
	assert.Equal(t, 1, repo.committedCount())
}

func TestConfirm_ZeroRebateDecrement(t *testing.T) {
	t.Run("decrements by default", func(t *testing.T) {
		discounts := &fakeDiscounts{remaining: map[int64]int{1: 3}}
		svc := NewBookingService(&fakeRepo{}, discounts, nil, nil, Options{})

		_, err := svc.Confirm(context.Background(), confirmRequest(int64Ptr(1), "0"))
		require.NoError(t, err)
		assert.Equal(t, 2, discounts.remaining[1])
	})

	t.Run("skipped when only rebates count", func(t *testing.T) {
		discounts := &fakeDiscounts{remaining: map[int64]int{1: 3}}
		svc := NewBookingService(&fakeRepo{}, discounts, nil, nil, Options{DecrementOnlyWithRebate: true})

		result, err := svc.Confirm(context.Background(), confirmRequest(int64Ptr(1), "0"))
		require.NoError(t, err)
		assert.Nil(t, result.RemainingUses)
		assert.Equal(t, 3, discounts.remaining[1])

		_, err = svc.Confirm(context.Background(), confirmRequest(int64Ptr(1), "100"))
		require.NoError(t, err)
		assert.Equal(t, 2, discounts.remaining[1])
	})
}

func TestConfirm_ExhaustedDiscountRollsBack(t *testing.T) {
	repo := &fakeRepo{}
	discounts := &fakeDiscounts{remaining: map[int64]int{1: 0}}
	queue := &recordingQueue{}

	svc := NewBookingService(repo, discounts, &recordingHistory{}, queue, Options{})
	_, err := svc.Confirm(context.Background(), confirmRequest(int64Ptr(1), "100"))

	requireBookingError(t, err, model.ErrCodeDiscountUnavailable, http.StatusNotFound)
	assert.Zero(t, repo.committedCount())
	assert.Empty(t, queue.payloads)
}

func TestConfirm_ConcurrentLastUse(t *testing.T) {
	const callers = 20

	repo := &fakeRepo{}
	discounts := &fakeDiscounts{remaining: map[int64]int{1: 1}}
	svc := NewBookingService(repo, discounts, nil, nil, Options{})

	var (
		wg        sync.WaitGroup
		succeeded int64
		rejected  int64
	)

	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			_, err := svc.Confirm(context.Background(), confirmRequest(int64Ptr(1), "100"))
			var bErr *model.BookingError
			switch {
			case err == nil:
				atomic.AddInt64(&succeeded, 1)
			case errors.As(err, &bErr) && bErr.Code == model.ErrCodeDiscountUnavailable:
				atomic.AddInt64(&rejected, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), succeeded)
	assert.Equal(t, int64(callers-1), rejected)
	assert.Equal(t, 0, discounts.remaining[1])
	assert.Equal(t, 1, repo.committedCount())
}

func TestConfirm_Errors(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		svc := NewBookingService(&fakeRepo{}, &fakeDiscounts{}, nil, nil, Options{})

		req := confirmRequest(nil, "0")
		req.ScheduleIDs = nil
		_, err := svc.Confirm(context.Background(), req)

		requireBookingError(t, err, model.ErrCodeValidationFailed, http.StatusUnprocessableEntity)
	})

	t.Run("rebate larger than total", func(t *testing.T) {
		svc := NewBookingService(&fakeRepo{}, &fakeDiscounts{}, nil, nil, Options{})

		_, err := svc.Confirm(context.Background(), confirmRequest(nil, "2500"))
		requireBookingError(t, err, model.ErrCodeValidationFailed, http.StatusUnprocessableEntity)
	})

	t.Run("unknown schedule", func(t *testing.T) {
		repo := &fakeRepo{createErr: &pgconn.PgError{Code: "23503"}}
		svc := NewBookingService(repo, &fakeDiscounts{}, nil, nil, Options{})

		_, err := svc.Confirm(context.Background(), confirmRequest(nil, "0"))
		requireBookingError(t, err, model.ErrCodeUnknownReference, http.StatusUnprocessableEntity)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := &fakeRepo{createErr: errors.New("connection reset")}
		svc := NewBookingService(repo, &fakeDiscounts{}, nil, nil, Options{})

		_, err := svc.Confirm(context.Background(), confirmRequest(nil, "0"))
		requireBookingError(t, err, model.ErrCodeInternalError, http.StatusInternalServerError)
	})

	t.Run("enqueue failure does not fail the booking", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewBookingService(repo, &fakeDiscounts{}, nil, &recordingQueue{err: errors.New("redis down")}, Options{})

		_, err := svc.Confirm(context.Background(), confirmRequest(nil, "0"))
		require.NoError(t, err)
		assert.Equal(t, 1, repo.committedCount())
	})
}

// stallingQueue blocks like an enqueue against an unreachable Redis
type stallingQueue struct {
	hadDeadline bool
}

func (q *stallingQueue) Enqueue(ctx context.Context, _ string, _ interface{}, _ ...asynq.Option) error {
	_, q.hadDeadline = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}

func TestConfirm_StalledQueueDoesNotBlock(t *testing.T) {
	repo := &fakeRepo{}
	queue := &stallingQueue{}
	svc := NewBookingService(repo, &fakeDiscounts{remaining: map[int64]int{1: 2}}, nil, queue,
		Options{EnqueueTimeout: 20 * time.Millisecond})

	type outcome struct {
		result *model.ConfirmBookingResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := svc.Confirm(context.Background(), confirmRequest(int64Ptr(1), "100"))
		done <- outcome{result, err}
	}()

	select {
	case out := <-done:
		require.NoError(t, out.err)
		require.NotNil(t, out.result.RemainingUses)
		assert.Equal(t, 1, *out.result.RemainingUses)
	case <-time.After(2 * time.Second):
		t.Fatal("confirm did not return while the queue was stalled")
	}

	assert.True(t, queue.hadDeadline)
	assert.Equal(t, 1, repo.committedCount())
}

func TestNewBookingService_DefaultEnqueueTimeout(t *testing.T) {
	svc := NewBookingService(&fakeRepo{}, &fakeDiscounts{}, nil, nil, Options{}).(*BookingService)
	assert.Equal(t, defaultEnqueueTimeout, svc.opts.EnqueueTimeout)
}
