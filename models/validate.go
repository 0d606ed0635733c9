package models

import (
	"fmt"
	"regexp"
	"sort"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateSlug checks the urlSlug shape: 3-50 chars of [a-z0-9-].
func ValidateSlug(slug string) error {
	if len(slug) < 3 || len(slug) > 50 {
		return fmt.Errorf("urlSlug must be 3-50 characters, got %d", len(slug))
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("urlSlug %q may only contain lowercase letters, digits and hyphens", slug)
	}
	return nil
}

// ValidateWeeklySchedule enforces the template's schedule shape: only the
// seven lowercase weekday keys, well-formed HH:MM clocks, End after Start,
// and no overlapping ranges on the same day. Each day's ranges are sorted by
// start time in place, so stored templates always hold them in order.
func ValidateWeeklySchedule(schedule map[string][]TimeRange) error {
	valid := make(map[string]bool, len(WeekdayKeys))
	for _, k := range WeekdayKeys {
		valid[k] = true
	}
	for key := range schedule {
		if !valid[key] {
			return fmt.Errorf("unknown weekday key %q", key)
		}
	}

	for _, key := range WeekdayKeys {
		ranges := schedule[key]
		// Zero-padded HH:MM strings sort lexicographically by clock time.
		sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
		starts := make([]int, len(ranges))
		ends := make([]int, len(ranges))
		for i, rng := range ranges {
			start, err := clockMinutes(rng.Start)
			if err != nil {
				return fmt.Errorf("%s: invalid start time %q", key, rng.Start)
			}
			end, err := clockMinutes(rng.End)
			if err != nil {
				return fmt.Errorf("%s: invalid end time %q", key, rng.End)
			}
			if end <= start {
				return fmt.Errorf("%s: range %s-%s must end after it starts", key, rng.Start, rng.End)
			}
			starts[i], ends[i] = start, end
		}
		for i := range ranges {
			for j := i + 1; j < len(ranges); j++ {
				if starts[i] < ends[j] && starts[j] < ends[i] {
					return fmt.Errorf("%s: ranges %s-%s and %s-%s overlap",
						key, ranges[i].Start, ranges[i].End, ranges[j].Start, ranges[j].End)
				}
			}
		}
	}
	return nil
}

// NormalizeBlackoutDays validates, sorts and deduplicates blackout dates.
func NormalizeBlackoutDays(days []string) ([]string, error) {
	seen := make(map[string]bool, len(days))
	out := make([]string, 0, len(days))
	for _, d := range days {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, fmt.Errorf("invalid blackout date %q", d)
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ValidateTemplate checks a template's invariants before it is persisted.
func ValidateTemplate(tpl *Template) error {
	if tpl.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if err := ValidateWeeklySchedule(tpl.WeeklySchedule); err != nil {
		return err
	}
	if tpl.BookingCutoffDate != "" {
		if _, err := time.Parse("2006-01-02", tpl.BookingCutoffDate); err != nil {
			return fmt.Errorf("invalid bookingCutoffDate %q", tpl.BookingCutoffDate)
		}
	}
	days, err := NormalizeBlackoutDays(tpl.BlackoutDays)
	if err != nil {
		return err
	}
	tpl.BlackoutDays = days
	return nil
}

// ValidateBookingLink checks a link's invariants before it is persisted.
// Template resolution is the caller's job; only shape is checked here.
func ValidateBookingLink(link *BookingLink) error {
	if link.Name == "" {
		return fmt.Errorf("booking link name is required")
	}
	if err := ValidateSlug(link.URLSlug); err != nil {
		return err
	}
	if link.DurationMinutes != 30 {
		return fmt.Errorf("duration is fixed at 30 minutes under the current rule set")
	}
	if !link.ValidAdvanceHours() {
		if link.RequireAdvanceBooking {
			return fmt.Errorf("advanceHours must be one of %v when advance booking is required", AdvanceHourOptions)
		}
		return fmt.Errorf("advanceHours must be 0 when advance booking is not required")
	}
	return nil
}

func clockMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
