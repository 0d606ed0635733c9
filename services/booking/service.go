// File: services/booking/service.go
package booking

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bookingRepo "hireslot/database/repository/booking"
	"hireslot/models"
	"hireslot/services/availability"
	"hireslot/utils"
)

// DefaultBookingService is the production BookingService.
type DefaultBookingService struct {
	Bookings     bookingRepo.BookingRepository
	Availability *availability.Engine
	Cache        *availability.MonthCache
	Logger       *zap.Logger
}

func (s *DefaultBookingService) now() time.Time {
	if s.Availability.Now != nil {
		return s.Availability.Now().In(s.Availability.Loc)
	}
	return time.Now().In(s.Availability.Loc)
}

// Create places a candidate on a slot. The engine's CheckSlot runs first so
// blackout/cutoff/advance-notice rules are enforced at commit time, not just
// at display time; slot occupancy itself is decided by the conditional
// insert, so two concurrent creates on the same key cannot both succeed.
func (s *DefaultBookingService) Create(ctx context.Context, req CreateRequest) (*models.Booking, error) {
	link, tpl, err := s.Availability.ResolveLink(ctx, req.BookingLinkID)
	if err != nil {
		return nil, err
	}
	if !link.IsActive {
		return nil, utils.NewNotFoundError("booking link %s is not accepting bookings", req.BookingLinkID)
	}

	if err := s.Availability.CheckSlot(ctx, link, tpl, req.SelectedDate, req.SelectedTime); err != nil {
		return nil, err
	}

	now := s.now()
	booking := &models.Booking{
		ID:                utils.NewID(utils.KindBooking).String(),
		BookingLinkID:     link.ID,
		SelectedDate:      req.SelectedDate,
		SelectedTime:      req.SelectedTime,
		Candidate:         req.Candidate,
		Status:            models.BookingStatusConfirmed,
		CancellationToken: uuid.New().String(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.Bookings.Insert(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, utils.NewSlotConflictError("slot %s %s is already booked", req.SelectedDate, req.SelectedTime)
		}
		return nil, err
	}

	s.refreshDay(ctx, link.ID, req.SelectedDate)
	return booking, nil
}

// Cancel flips a confirmed booking to its terminal state. The bearer token
// is the only authorization; past bookings and repeat cancellations are
// rejected as gone.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID, token string) error {
	booking, err := s.authorize(ctx, bookingID, token)
	if err != nil {
		return err
	}
	if err := s.rejectInactive(booking); err != nil {
		return err
	}

	if err := s.Bookings.UpdateStatus(ctx, booking.ID, models.BookingStatusCancelled); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NewNotFoundError("booking %s not found", bookingID)
		}
		return err
	}

	s.refreshDay(ctx, booking.BookingLinkID, booking.SelectedDate)
	return nil
}

// Reschedule moves a confirmed booking to a new slot. Identity (id, token,
// candidate data) is preserved; the key transfer is a single conditional
// update, so no state is observable where both or neither slot is held.
func (s *DefaultBookingService) Reschedule(ctx context.Context, bookingID, token, newDate, newTime string) (*models.Booking, error) {
	booking, err := s.authorize(ctx, bookingID, token)
	if err != nil {
		return nil, err
	}
	if err := s.rejectInactive(booking); err != nil {
		return nil, err
	}

	link, tpl, err := s.Availability.ResolveLink(ctx, booking.BookingLinkID)
	if err != nil {
		return nil, err
	}
	if err := s.Availability.CheckSlot(ctx, link, tpl, newDate, newTime); err != nil {
		return nil, err
	}

	oldDate := booking.SelectedDate
	if err := s.Bookings.UpdateDateTime(ctx, booking.ID, newDate, newTime); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrSlotTaken):
			return nil, utils.NewSlotConflictError("slot %s %s is already booked", newDate, newTime)
		case errors.Is(err, mongo.ErrNoDocuments):
			// Lost a race with a cancel; the booking is no longer movable.
			return nil, utils.NewGoneError("booking %s is no longer active", bookingID)
		default:
			return nil, err
		}
	}

	booking.SelectedDate = newDate
	booking.SelectedTime = newTime
	booking.UpdatedAt = s.now()

	s.refreshDay(ctx, booking.BookingLinkID, oldDate)
	s.refreshDay(ctx, booking.BookingLinkID, newDate)
	return booking, nil
}

// authorize loads the booking and verifies the bearer token.
func (s *DefaultBookingService) authorize(ctx context.Context, bookingID, token string) (*models.Booking, error) {
	if _, err := utils.ParseKind(bookingID, utils.KindBooking); err != nil {
		return nil, utils.NewValidationError("invalid booking id: %v", err)
	}

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NewNotFoundError("booking %s not found", bookingID)
	}
	if err != nil {
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(booking.CancellationToken)) != 1 {
		return nil, utils.NewForbiddenError("cancellation token does not match")
	}
	return booking, nil
}

// rejectInactive refuses transitions on cancelled or already-past bookings.
func (s *DefaultBookingService) rejectInactive(booking *models.Booking) error {
	if booking.Status == models.BookingStatusCancelled {
		return utils.NewGoneError("booking %s is already cancelled", booking.ID)
	}
	start, err := availability.SlotStart(booking.SelectedDate, booking.SelectedTime, s.Availability.Loc)
	if err != nil {
		return utils.NewValidationError("booking %s has unparseable slot time", booking.ID)
	}
	if start.Before(s.now()) {
		return utils.NewGoneError("booking %s is in the past", booking.ID)
	}
	return nil
}

// refreshDay keeps the month cache in step with a booking event; failures
// are logged only, never surfaced, because the cache is advisory.
func (s *DefaultBookingService) refreshDay(ctx context.Context, linkID, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.UpdateDay(ctx, linkID, date); err != nil {
		s.Logger.Warn("cache day refresh failed",
			zap.String("linkId", linkID), zap.String("date", date), zap.Error(err))
	}
}
