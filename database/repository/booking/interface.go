// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"hireslot/models"
)

// ErrSlotTaken is returned when an insert or a date/time move collides with
// another confirmed booking on the same (bookingLinkId, selectedDate,
// selectedTime) key. The partial unique index is the sole source of this
// error; callers treat it as the authoritative conflict signal.
var ErrSlotTaken = errors.New("slot already held by a confirmed booking")

type BookingRepository interface {
	EnsureIndexes(ctx context.Context) error
	// Insert persists a new booking. Fails with ErrSlotTaken when a confirmed
	// booking already occupies the slot key.
	Insert(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	FindConfirmedByLinkAndDate(ctx context.Context, linkID, date string) ([]models.Booking, error)
	FindConfirmedByLinkAndMonth(ctx context.Context, linkID string, year, month int) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// UpdateDateTime moves a confirmed booking to a new slot key in a single
	// document update: the old key is released and the new one acquired
	// atomically under the unique index. Fails with ErrSlotTaken when the
	// target key is occupied, leaving the booking untouched.
	UpdateDateTime(ctx context.Context, id, newDate, newTime string) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo(client *mongo.Client, dbName string) BookingRepository {
	return &mongoBookingRepo{
		coll: client.Database(dbName).Collection("bookings"),
	}
}
