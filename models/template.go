package models

import "time"

// TimeRange is a half-open working window inside a single weekday, e.g.
// 09:00-12:30. Ranges on the same day never overlap.
type TimeRange struct {
	Start string `bson:"start" json:"startTime"` // 24-hour "HH:MM"
	End   string `bson:"end" json:"endTime"`     // 24-hour "HH:MM", strictly after Start
}

// WeekdayKeys are the seven allowed WeeklySchedule keys, Monday first.
var WeekdayKeys = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Template is an administrator-defined recurring weekly availability pattern.
// Booking links reference a template; candidates never see templates directly.
type Template struct {
	ID                string                 `bson:"id" json:"id"`                                             // "TPL_..." identifier
	Name              string                 `bson:"name" json:"name"`
	WeeklySchedule    map[string][]TimeRange `bson:"weeklySchedule" json:"weeklySchedule"`                     // weekday key -> ordered disjoint ranges
	BlackoutDays      []string               `bson:"blackoutDays,omitempty" json:"blackoutDays"`               // "YYYY-MM-DD", sorted, deduplicated
	BookingCutoffDate string                 `bson:"bookingCutoffDate,omitempty" json:"bookingCutoffDate"`     // optional; bookable through 23:59:59 of this date
	CreatedAt         time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// RangesFor returns the configured ranges for a lowercase weekday key.
func (t *Template) RangesFor(weekday string) []TimeRange {
	return t.WeeklySchedule[weekday]
}

// IsBlackout reports whether the date is a forced-unavailable day.
func (t *Template) IsBlackout(date string) bool {
	for _, d := range t.BlackoutDays {
		if d == date {
			return true
		}
	}
	return false
}
