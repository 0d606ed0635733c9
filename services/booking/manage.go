// File: services/booking/manage.go
package booking

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"hireslot/utils"
)

// GetDetails backs the candidate-facing management page. Token possession
// substitutes for authentication here and nowhere else; cancelled and past
// bookings have nothing left to manage.
func (s *DefaultBookingService) GetDetails(ctx context.Context, bookingID, token string) (*ManagedBooking, error) {
	booking, err := s.authorize(ctx, bookingID, token)
	if err != nil {
		return nil, err
	}
	if err := s.rejectInactive(booking); err != nil {
		return nil, err
	}

	link, err := s.Availability.Links.GetByID(ctx, booking.BookingLinkID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NewNotFoundError("booking link %s not found", booking.BookingLinkID)
	}
	if err != nil {
		return nil, err
	}

	return &ManagedBooking{
		Booking:         booking,
		LinkName:        link.Name,
		LinkSlug:        link.URLSlug,
		DurationMinutes: link.DurationMinutes,
	}, nil
}
