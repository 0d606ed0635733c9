package models

import "time"

// AdvanceHourOptions are the only valid AdvanceHours values. Zero is
// reserved for links that do not require advance booking.
var AdvanceHourOptions = []int{6, 12, 24, 48}

// BookingLink is a published, slug-addressed instance of a template with
// link-specific booking policy.
type BookingLink struct {
	ID                    string    `bson:"id" json:"id"`                                       // "LNK_..." identifier
	TemplateID            string    `bson:"templateId" json:"templateId"`                       // "TPL_..." reference, validated at every boundary
	Name                  string    `bson:"name" json:"name"`
	URLSlug               string    `bson:"urlSlug" json:"urlSlug"`                             // unique, 3-50 chars, [a-z0-9-]+
	DurationMinutes       int       `bson:"durationMinutes" json:"durationMinutes"`             // fixed at 30 under the current rule set
	RequireAdvanceBooking bool      `bson:"requireAdvanceBooking" json:"requireAdvanceBooking"`
	AdvanceHours          int       `bson:"advanceHours" json:"advanceHours"`                   // one of {6,12,24,48} when required, else 0
	IsActive              bool      `bson:"isActive" json:"isActive"`
	CreatedAt             time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ValidAdvanceHours checks the cross-field constraint between
// RequireAdvanceBooking and AdvanceHours.
func (l *BookingLink) ValidAdvanceHours() bool {
	if !l.RequireAdvanceBooking {
		return l.AdvanceHours == 0
	}
	for _, h := range AdvanceHourOptions {
		if l.AdvanceHours == h {
			return true
		}
	}
	return false
}

// CacheAffectingFieldsChanged reports whether an edit moved any field that
// feeds availability computation. Name-only edits keep the cache intact.
func (l *BookingLink) CacheAffectingFieldsChanged(prev *BookingLink) bool {
	return l.TemplateID != prev.TemplateID ||
		l.RequireAdvanceBooking != prev.RequireAdvanceBooking ||
		l.AdvanceHours != prev.AdvanceHours ||
		l.IsActive != prev.IsActive
}
