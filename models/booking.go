package models

import "time"

// Booking status values. Cancelled is terminal.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Candidate holds the interviewee's contact details. The booking engine
// treats these fields as opaque payload.
type Candidate struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Notes string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Booking is a candidate's hold on one slot. For a given booking link, at
// most one confirmed booking may exist per (selectedDate, selectedTime); the
// pair is the slot-occupancy key and a partial unique index enforces it.
type Booking struct {
	ID                string    `bson:"id" json:"id"`                             // "BKG_..." identifier
	BookingLinkID     string    `bson:"bookingLinkId" json:"bookingLinkId"`       // "LNK_..." reference
	SelectedDate      string    `bson:"selectedDate" json:"selectedDate"`         // "YYYY-MM-DD"
	SelectedTime      string    `bson:"selectedTime" json:"selectedTime"`         // 24-hour "HH:MM", slot start
	Candidate         Candidate `bson:"candidate" json:"candidate"`
	Status            string    `bson:"status" json:"status"`                     // "confirmed" or "cancelled"
	CancellationToken string    `bson:"cancellationToken" json:"-"`               // bearer credential, generated once, never rotated
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}
