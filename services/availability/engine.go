// File: services/availability/engine.go
package availability

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bookingRepo "hireslot/database/repository/booking"
	linkRepo "hireslot/database/repository/bookinglink"
	templateRepo "hireslot/database/repository/template"
	"hireslot/models"
	"hireslot/utils"
)

// Engine decides what is actually offerable to a candidate for a given
// booking link and date. It is the live, authoritative path: the month cache
// is derived from it and callers that need real-time truth for a single
// date (final slot confirmation before booking) call the engine directly.
type Engine struct {
	Templates templateRepo.TemplateRepository
	Links     linkRepo.BookingLinkRepository
	Bookings  bookingRepo.BookingRepository
	Loc       *time.Location
	Now       func() time.Time // injectable clock; nil means time.Now
	Logger    *zap.Logger
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now().In(e.Loc)
	}
	return time.Now().In(e.Loc)
}

// ResolveLink parses and resolves a booking link id together with its
// template. The template reference is kind-checked before it is trusted;
// storage has no foreign keys, so this gate is the integrity story.
func (e *Engine) ResolveLink(ctx context.Context, linkID string) (*models.BookingLink, *models.Template, error) {
	id, err := utils.ParseKind(linkID, utils.KindBookingLink)
	if err != nil {
		return nil, nil, utils.NewValidationError("invalid booking link id: %v", err)
	}

	link, err := e.Links.GetByID(ctx, id.String())
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil, utils.NewNotFoundError("booking link %s not found", linkID)
	}
	if err != nil {
		return nil, nil, err
	}

	if _, err := utils.ParseKind(link.TemplateID, utils.KindTemplate); err != nil {
		return nil, nil, utils.NewNotFoundError("booking link %s references an invalid template id", linkID)
	}
	tpl, err := e.Templates.GetByID(ctx, link.TemplateID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil, utils.NewNotFoundError("template %s not found", link.TemplateID)
	}
	if err != nil {
		return nil, nil, err
	}
	return link, tpl, nil
}

// IsPastDate reports whether date is strictly before the current local
// calendar day. Today is not past, regardless of the clock.
func (e *Engine) IsPastDate(date string) (bool, error) {
	day, err := ParseDate(date, e.Loc)
	if err != nil {
		return false, utils.NewValidationError("invalid date %q", date)
	}
	now := e.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, e.Loc)
	return day.Before(today), nil
}

// IsDateUnavailable reports whether the template forces the date off: a
// blackout day, or a date past the booking cutoff (cutoff is inclusive, so
// the cutoff day itself remains bookable through 23:59:59).
func (e *Engine) IsDateUnavailable(tpl *models.Template, date string) bool {
	if tpl.IsBlackout(date) {
		return true
	}
	if tpl.BookingCutoffDate != "" && date > tpl.BookingCutoffDate {
		return true
	}
	return false
}

// AvailableSlotsForDate runs the full offerability pipeline: nothing for
// past or unavailable days; generated slots minus those held by confirmed
// bookings; and, when the link requires advance booking, minus slots
// starting less than AdvanceHours ahead of now. A slot starting exactly
// AdvanceHours away is admitted.
func (e *Engine) AvailableSlotsForDate(tpl *models.Template, link *models.BookingLink, date string, confirmed []models.Booking) ([]models.TimeSlot, error) {
	if past, err := e.IsPastDate(date); err != nil || past {
		return nil, err
	}
	if e.IsDateUnavailable(tpl, date) {
		return nil, nil
	}

	slots, err := SlotsForDate(tpl.WeeklySchedule, date, link.DurationMinutes)
	if err != nil {
		return nil, utils.NewValidationError("%v", err)
	}

	booked := make(map[string]bool, len(confirmed))
	for _, b := range confirmed {
		booked[b.SelectedTime] = true
	}

	available := slots[:0]
	for _, slot := range slots {
		if booked[slot.StartTime] {
			continue
		}
		if link.RequireAdvanceBooking {
			ok, err := e.meetsAdvanceNotice(date, slot.StartTime, link.AdvanceHours)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		available = append(available, slot)
	}
	return available, nil
}

func (e *Engine) meetsAdvanceNotice(date, clock string, advanceHours int) (bool, error) {
	start, err := SlotStart(date, clock, e.Loc)
	if err != nil {
		return false, utils.NewValidationError("invalid slot time %q %q", date, clock)
	}
	hoursUntil := start.Sub(e.now()).Hours()
	return hoursUntil >= float64(advanceHours), nil
}

// SlotsForDay is the live read path behind the day-slots endpoint: every
// generated slot with its availability flag, start-time ordered. Inactive
// links offer nothing.
func (e *Engine) SlotsForDay(ctx context.Context, linkID, date string) ([]models.SlotView, error) {
	link, tpl, err := e.ResolveLink(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if _, err := ParseDate(date, e.Loc); err != nil {
		return nil, utils.NewValidationError("invalid date %q", date)
	}
	if !link.IsActive {
		return []models.SlotView{}, nil
	}

	all, err := SlotsForDate(tpl.WeeklySchedule, date, link.DurationMinutes)
	if err != nil {
		return nil, utils.NewValidationError("%v", err)
	}

	confirmed, err := e.Bookings.FindConfirmedByLinkAndDate(ctx, link.ID, date)
	if err != nil {
		return nil, err
	}
	open, err := e.AvailableSlotsForDate(tpl, link, date, confirmed)
	if err != nil {
		return nil, err
	}
	openByID := make(map[string]bool, len(open))
	for _, s := range open {
		openByID[s.ID] = true
	}

	views := make([]models.SlotView, 0, len(all))
	for _, s := range all {
		views = append(views, models.SlotView{
			ID:        s.ID,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Available: openByID[s.ID],
		})
	}
	return views, nil
}

// DaySummary condenses one day to the counts the month cache stores,
// without materializing slot views.
func (e *Engine) DaySummary(tpl *models.Template, link *models.BookingLink, date string, confirmed []models.Booking) (models.DayAvailability, error) {
	summary := models.DayAvailability{Date: date}

	if !link.IsActive {
		return summary, nil
	}
	total, err := SlotsForDate(tpl.WeeklySchedule, date, link.DurationMinutes)
	if err != nil {
		return summary, utils.NewValidationError("%v", err)
	}
	summary.TotalSlots = len(total)

	open, err := e.AvailableSlotsForDate(tpl, link, date, confirmed)
	if err != nil {
		return summary, err
	}
	summary.AvailableSlots = len(open)
	summary.Available = len(open) > 0
	return summary, nil
}

// CheckSlot validates that one specific (date, time) is offerable right now:
// format, schedule membership, blackout/cutoff/past rules, advance notice,
// and a fast-path occupancy check. The occupancy check is user-experience
// only; the authoritative conflict signal is the conditional write in the
// booking repository.
func (e *Engine) CheckSlot(ctx context.Context, link *models.BookingLink, tpl *models.Template, date, clock string) error {
	if _, err := ParseDate(date, e.Loc); err != nil {
		return utils.NewValidationError("invalid date %q", date)
	}
	if !ValidClock(clock) {
		return utils.NewValidationError("invalid time %q", clock)
	}

	if past, err := e.IsPastDate(date); err != nil {
		return err
	} else if past {
		return utils.NewValidationError("date %s is in the past", date)
	}
	if e.IsDateUnavailable(tpl, date) {
		return utils.NewValidationError("date %s is not available for booking", date)
	}

	// A same-day slot whose start has passed is not bookable even when the
	// link requires no advance notice.
	start, err := SlotStart(date, clock, e.Loc)
	if err != nil {
		return utils.NewValidationError("invalid slot time %q %q", date, clock)
	}
	if start.Before(e.now()) {
		return utils.NewValidationError("slot %s %s has already started", date, clock)
	}

	slots, err := SlotsForDate(tpl.WeeklySchedule, date, link.DurationMinutes)
	if err != nil {
		return utils.NewValidationError("%v", err)
	}
	found := false
	for _, s := range slots {
		if s.StartTime == clock {
			found = true
			break
		}
	}
	if !found {
		return utils.NewValidationError("time %s is not a valid slot on %s", clock, date)
	}

	if link.RequireAdvanceBooking {
		ok, err := e.meetsAdvanceNotice(date, clock, link.AdvanceHours)
		if err != nil {
			return err
		}
		if !ok {
			return utils.NewValidationError("slot requires at least %d hours advance booking", link.AdvanceHours)
		}
	}

	confirmed, err := e.Bookings.FindConfirmedByLinkAndDate(ctx, link.ID, date)
	if err != nil {
		return err
	}
	for _, b := range confirmed {
		if b.SelectedTime == clock {
			return utils.NewSlotConflictError("slot %s %s is already booked", date, clock)
		}
	}
	return nil
}
