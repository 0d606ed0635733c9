// File: services/availability/slots.go
package availability

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"hireslot/models"
)

// SlotDurationMinutes is the fixed slot length under the current rule set.
const SlotDurationMinutes = 30

const dateLayout = "2006-01-02"

// SlotsForDate slices a template's weekly schedule into concrete bookable
// slots for one calendar date. Pure and deterministic: the date picks the
// weekday key, each configured range is walked forward in fixed-duration
// steps, and a slot [t, t+d) is emitted only while t+d still fits inside the
// range. A dangling remainder shorter than one slot is dropped silently.
func SlotsForDate(schedule map[string][]models.TimeRange, date string, durationMinutes int) ([]models.TimeSlot, error) {
	if durationMinutes <= 0 {
		durationMinutes = SlotDurationMinutes
	}

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	var slots []models.TimeSlot
	for _, rng := range schedule[weekdayKey(day.Weekday())] {
		start, err := parseClock(rng.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid range start %q: %w", rng.Start, err)
		}
		end, err := parseClock(rng.End)
		if err != nil {
			return nil, fmt.Errorf("invalid range end %q: %w", rng.End, err)
		}

		for t := start; t+durationMinutes <= end; t += durationMinutes {
			slots = append(slots, models.TimeSlot{
				ID:        slotID(date, t),
				StartTime: formatClock(t),
				EndTime:   formatClock(t + durationMinutes),
			})
		}
	}
	// Ranges may arrive unsorted (templates written before normalization, or
	// callers passing raw maps); the output contract is start-time order.
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime < slots[j].StartTime })
	return slots, nil
}

// slotID derives an idempotent identifier from date and start time, so the
// same inputs always name the same slot.
func slotID(date string, startMinutes int) string {
	return fmt.Sprintf("slot_%s_%s", strings.ReplaceAll(date, "-", ""), strings.ReplaceAll(formatClock(startMinutes), ":", ""))
}

func weekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// parseClock converts a 24-hour "HH:MM" string to minutes from midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// formatClock is the inverse of parseClock.
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate validates a YYYY-MM-DD string and anchors it to midnight in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, date, loc)
}

// ValidClock reports whether s is a well-formed 24-hour HH:MM string.
func ValidClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}

// SlotStart combines a date and a slot's HH:MM start into an absolute time.
func SlotStart(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout+" 15:04", date+" "+clock, loc)
}
