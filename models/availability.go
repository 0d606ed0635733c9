package models

import "time"

// TimeSlot is one 30-minute bookable interval derived from a template range.
// The ID is deterministic over (date, start) so repeated generation of the
// same day yields identical slots.
type TimeSlot struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"` // 24-hour "HH:MM"
	EndTime   string `json:"endTime"`   // 24-hour "HH:MM"
}

// SlotView is a candidate-facing slot with its availability flag; taken or
// rule-excluded slots are shown greyed out rather than omitted.
type SlotView struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// DayAvailability summarizes one calendar day for the month overview.
type DayAvailability struct {
	Date           string `bson:"date" json:"date"` // "YYYY-MM-DD"
	Available      bool   `bson:"available" json:"available"`
	TotalSlots     int    `bson:"totalSlots" json:"totalSlots"`
	AvailableSlots int    `bson:"availableSlots" json:"availableSlots"`
}

// MonthAvailability is the cached month-granularity materialization of
// computed availability for one booking link. It is a pure cache: ground
// truth is always Template + BookingLink + Booking, and an entry may be
// deleted and recomputed at any time.
type MonthAvailability struct {
	BookingLinkID string            `json:"bookingLinkId"`
	Year          int               `json:"year"`
	Month         int               `json:"month"` // 1-12
	Days          []DayAvailability `json:"availability"`
	LastUpdated   time.Time         `json:"lastUpdated"`
}
