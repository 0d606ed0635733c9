package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeAvailabilityRefresh = "availability:refresh"

// RefreshPayload names one month of one booking link to re-warm after an
// invalidation event.
type RefreshPayload struct {
	BookingLinkID string `json:"bookingLinkId"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`
}

func NewAvailabilityRefreshTask(payload RefreshPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAvailabilityRefresh, b), nil
}
