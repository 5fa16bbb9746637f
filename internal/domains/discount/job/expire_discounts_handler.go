package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"booking-backend/pkg/logger"
)

// ExpiredDiscounts exhausts discounts past their valid_until date
type ExpiredDiscounts interface {
	ExhaustExpired(ctx context.Context, today time.Time) (int64, error)
}

// ExpireDiscountsPayload is empty; the job always runs against today
type ExpireDiscountsPayload struct{}

// ExpireDiscountsHandler runs on a schedule. An expired code keeps its row
// but loses its remaining uses, so lookups treat it as exhausted.
type ExpireDiscountsHandler struct {
	repo ExpiredDiscounts
	now  func() time.Time
}

func NewExpireDiscountsHandler(repo ExpiredDiscounts) *ExpireDiscountsHandler {
	return &ExpireDiscountsHandler{repo: repo, now: time.Now}
}

func (h *ExpireDiscountsHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	today := h.now().UTC()

	count, err := h.repo.ExhaustExpired(ctx, today)
	if err != nil {
		return fmt.Errorf("expire discounts: %w", err)
	}

	logger.Info("[Discount] Expired discounts exhausted", map[string]interface{}{
		"date":  today.Format("2006-01-02"),
		"count": count,
	})

	return nil
}
