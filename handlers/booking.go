package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireslot/services/booking"
	"hireslot/utils"
)

// CreateBooking places a candidate on a slot. A conflict with another
// confirmed booking surfaces as 409.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req booking.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	created, err := h.Bookings.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// The token is returned exactly once, at creation.
	c.JSON(http.StatusCreated, gin.H{
		"booking":           created,
		"cancellationToken": created.CancellationToken,
	})
}

// GetBookingDetails backs the candidate management page; the bearer token in
// the query string is the only credential.
func (h *Handler) GetBookingDetails(c *gin.Context) {
	details, err := h.Bookings.GetDetails(c.Request.Context(), c.Param("bookingId"), c.Query("token"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

type tokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// CancelBooking flips a booking to its terminal cancelled state.
func (h *Handler) CancelBooking(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if err := h.Bookings.Cancel(c.Request.Context(), c.Param("bookingId"), req.Token); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

type rescheduleRequest struct {
	Token   string `json:"token" binding:"required"`
	NewDate string `json:"newDate" binding:"required"`
	NewTime string `json:"newTime" binding:"required"`
}

// RescheduleBooking moves a booking to a new slot, preserving its identity.
func (h *Handler) RescheduleBooking(c *gin.Context) {
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	moved, err := h.Bookings.Reschedule(c.Request.Context(), c.Param("bookingId"), req.Token, req.NewDate, req.NewTime)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": moved})
}
