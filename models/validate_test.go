package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("backend-screen"))
	assert.NoError(t, ValidateSlug("abc"))
	assert.NoError(t, ValidateSlug("q3-2025-interviews"))

	assert.Error(t, ValidateSlug("ab"))
	assert.Error(t, ValidateSlug("Backend-Screen"))
	assert.Error(t, ValidateSlug("backend_screen"))
	assert.Error(t, ValidateSlug("backend screen"))
	assert.Error(t, ValidateSlug(""))
}

func TestValidateWeeklySchedule(t *testing.T) {
	assert.NoError(t, ValidateWeeklySchedule(map[string][]TimeRange{
		"monday": {{Start: "09:00", End: "12:00"}, {Start: "13:00", End: "17:00"}},
		"friday": {{Start: "10:00", End: "11:30"}},
	}))

	// Empty schedules are legal; a template can be all-closed.
	assert.NoError(t, ValidateWeeklySchedule(map[string][]TimeRange{}))

	assert.Error(t, ValidateWeeklySchedule(map[string][]TimeRange{
		"funday": {{Start: "09:00", End: "12:00"}},
	}))
	assert.Error(t, ValidateWeeklySchedule(map[string][]TimeRange{
		"monday": {{Start: "9am", End: "12:00"}},
	}))
	assert.Error(t, ValidateWeeklySchedule(map[string][]TimeRange{
		"monday": {{Start: "12:00", End: "09:00"}},
	}))
	assert.Error(t, ValidateWeeklySchedule(map[string][]TimeRange{
		"monday": {{Start: "09:00", End: "09:00"}},
	}))

	// Overlap on the same day, including containment.
	assert.Error(t, ValidateWeeklySchedule(map[string][]TimeRange{
		"monday": {{Start: "09:00", End: "12:00"}, {Start: "11:00", End: "14:00"}},
	}))
	assert.Error(t, ValidateWeeklySchedule(map[string][]TimeRange{
		"monday": {{Start: "09:00", End: "17:00"}, {Start: "10:00", End: "11:00"}},
	}))

	// Back-to-back ranges touch but do not overlap.
	assert.NoError(t, ValidateWeeklySchedule(map[string][]TimeRange{
		"monday": {{Start: "09:00", End: "12:00"}, {Start: "12:00", End: "15:00"}},
	}))
}

func TestValidateWeeklyScheduleSortsRanges(t *testing.T) {
	schedule := map[string][]TimeRange{
		"monday": {
			{Start: "14:00", End: "15:00"},
			{Start: "09:00", End: "10:00"},
			{Start: "11:00", End: "12:00"},
		},
	}
	require.NoError(t, ValidateWeeklySchedule(schedule))
	assert.Equal(t, []TimeRange{
		{Start: "09:00", End: "10:00"},
		{Start: "11:00", End: "12:00"},
		{Start: "14:00", End: "15:00"},
	}, schedule["monday"])

	// Out-of-order input must not mask an overlap.
	assert.Error(t, ValidateWeeklySchedule(map[string][]TimeRange{
		"monday": {{Start: "11:00", End: "14:00"}, {Start: "09:00", End: "12:00"}},
	}))
}

func TestNormalizeBlackoutDays(t *testing.T) {
	days, err := NormalizeBlackoutDays([]string{"2025-12-25", "2025-01-01", "2025-12-25"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-01", "2025-12-25"}, days)

	_, err = NormalizeBlackoutDays([]string{"25-12-2025"})
	assert.Error(t, err)
}

func TestValidateBookingLink(t *testing.T) {
	base := func() *BookingLink {
		return &BookingLink{
			Name:            "Backend screen",
			URLSlug:         "backend-screen",
			DurationMinutes: 30,
		}
	}

	assert.NoError(t, ValidateBookingLink(base()))

	link := base()
	link.RequireAdvanceBooking = true
	link.AdvanceHours = 24
	assert.NoError(t, ValidateBookingLink(link))

	link = base()
	link.RequireAdvanceBooking = true
	link.AdvanceHours = 7
	assert.Error(t, ValidateBookingLink(link))

	link = base()
	link.AdvanceHours = 24
	assert.Error(t, ValidateBookingLink(link))

	link = base()
	link.DurationMinutes = 45
	assert.Error(t, ValidateBookingLink(link))

	link = base()
	link.Name = ""
	assert.Error(t, ValidateBookingLink(link))
}

func TestValidateTemplateNormalizesBlackouts(t *testing.T) {
	tpl := &Template{
		Name: "Interviews",
		WeeklySchedule: map[string][]TimeRange{
			"monday": {{Start: "09:00", End: "11:00"}},
		},
		BlackoutDays: []string{"2025-07-04", "2025-01-01", "2025-07-04"},
	}
	require.NoError(t, ValidateTemplate(tpl))
	assert.Equal(t, []string{"2025-01-01", "2025-07-04"}, tpl.BlackoutDays)

	tpl.BookingCutoffDate = "not-a-date"
	assert.Error(t, ValidateTemplate(tpl))
}
