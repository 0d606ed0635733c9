package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"hireslot/utils"
)

// GetLinkBySlug resolves a published booking link for the candidate page.
// Inactive links are indistinguishable from unknown ones.
func (h *Handler) GetLinkBySlug(c *gin.Context) {
	slug := c.Param("slug")

	link, err := h.Links.GetBySlug(c.Request.Context(), slug)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.JSONError(c, http.StatusNotFound, "Not found", "booking link not found")
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !link.IsActive {
		utils.JSONError(c, http.StatusNotFound, "Not found", "booking link not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                    link.ID,
		"name":                  link.Name,
		"urlSlug":               link.URLSlug,
		"durationMinutes":       link.DurationMinutes,
		"requireAdvanceBooking": link.RequireAdvanceBooking,
		"advanceHours":          link.AdvanceHours,
	})
}

// GetMonthAvailability serves the month overview from the cache.
func (h *Handler) GetMonthAvailability(c *gin.Context) {
	linkID := c.Param("linkId")

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "year must be an integer")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "month must be an integer")
		return
	}

	entry, err := h.Cache.GetMonth(c.Request.Context(), linkID, year, month)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":          entry.Year,
		"month":         entry.Month,
		"bookingLinkId": entry.BookingLinkID,
		"availability":  entry.Days,
	})
}

// GetDaySlots serves the per-slot view for one date. Always computed live:
// this is the read candidates confirm against before booking, so it bypasses
// the cache.
func (h *Handler) GetDaySlots(c *gin.Context) {
	linkID := c.Param("linkId")
	date := c.Query("date")

	slots, err := h.Availability.SlotsForDay(c.Request.Context(), linkID, date)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":          date,
		"bookingLinkId": linkID,
		"timeSlots":     slots,
	})
}
