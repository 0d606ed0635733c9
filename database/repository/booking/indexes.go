// File: database/repository/booking/indexes.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hireslot/models"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
// The partial unique index on the slot key is load-bearing: it is what makes
// Insert and UpdateDateTime conditional writes, so slot uniqueness never
// depends on a read-then-write check.
func (r *mongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// At most one confirmed booking per (link, date, time). Cancelled
		// bookings fall out of the partial filter, which is exactly what
		// frees the slot on cancellation.
		{
			Keys: bson.D{
				{Key: "bookingLinkId", Value: 1},
				{Key: "selectedDate", Value: 1},
				{Key: "selectedTime", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_confirmed_slot").
				SetPartialFilterExpression(bson.M{"status": models.BookingStatusConfirmed}),
		},
		// Primary read pattern: all confirmed bookings for a link and day.
		{
			Keys: bson.D{
				{Key: "bookingLinkId", Value: 1},
				{Key: "status", Value: 1},
				{Key: "selectedDate", Value: 1},
			},
			Options: options.Index().SetName("link_status_date_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
