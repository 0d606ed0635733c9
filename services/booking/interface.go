// File: services/booking/interface.go
package booking

import (
	"context"

	"hireslot/models"
)

// CreateRequest carries everything needed to place a candidate on a slot.
type CreateRequest struct {
	BookingLinkID string           `json:"bookingLinkId" binding:"required"`
	SelectedDate  string           `json:"selectedDate" binding:"required"`
	SelectedTime  string           `json:"selectedTime" binding:"required"`
	Candidate     models.Candidate `json:"candidate" binding:"required"`
}

// ManagedBooking is the candidate-facing view for the manage page: the
// booking plus a summary of its parent link.
type ManagedBooking struct {
	Booking         *models.Booking `json:"booking"`
	LinkName        string          `json:"linkName"`
	LinkSlug        string          `json:"linkSlug"`
	DurationMinutes int             `json:"durationMinutes"`
}

// BookingService owns the slot-uniqueness invariant and the booking
// lifecycle: Confirmed --cancel--> Cancelled (terminal), Confirmed
// --reschedule--> Confirmed (slot key moves, identity stays).
type BookingService interface {
	Create(ctx context.Context, req CreateRequest) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, token string) error
	Reschedule(ctx context.Context, bookingID, token, newDate, newTime string) (*models.Booking, error)
	GetDetails(ctx context.Context, bookingID, token string) (*ManagedBooking, error)
}
