package cron

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"hireslot/services/availability"
	"hireslot/services/tasks"
	"hireslot/utils"
)

// StartRefreshWorker runs the asynq worker that re-warms invalidated month
// caches in the background, so the next candidate read lands on a fresh
// entry instead of paying for a full recompute inline.
func StartRefreshWorker(redisOpt asynq.RedisClientOpt, cache *availability.MonthCache, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAvailabilityRefresh, handleRefreshTask(cache, logger))

	go func() {
		logger.Info("starting availability refresh worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("refresh worker stopped", zap.Error(err))
		}
	}()

	return srv
}

func handleRefreshTask(cache *availability.MonthCache, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.RefreshPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Warn("refresh task has invalid payload", zap.Error(err))
			return err
		}

		// GetMonth recomputes and persists when the entry is missing, which
		// after an invalidation it always is.
		if _, err := cache.GetMonth(ctx, p.BookingLinkID, p.Year, p.Month); err != nil {
			logger.Warn("refresh failed",
				zap.String("linkId", p.BookingLinkID),
				zap.Int("year", p.Year), zap.Int("month", p.Month), zap.Error(err))
			// A link deleted between enqueue and processing is not worth
			// retrying; transient store errors are.
			if code := utils.ErrorCode(err); code == utils.CodeNotFound || code == utils.CodeValidation {
				return nil
			}
			return err
		}
		return nil
	}
}
