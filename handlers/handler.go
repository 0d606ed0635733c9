package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	linkRepo "hireslot/database/repository/bookinglink"
	templateRepo "hireslot/database/repository/template"
	"hireslot/services/availability"
	"hireslot/services/booking"
	"hireslot/utils"
)

// Handler bundles the services the HTTP layer fronts. Dependencies are
// injected from main; handlers hold no globals.
type Handler struct {
	Bookings     booking.BookingService
	Availability *availability.Engine
	Cache        *availability.MonthCache
	Templates    templateRepo.TemplateRepository
	Links        linkRepo.BookingLinkRepository
	Invalidator  *availability.Invalidator
	Logger       *zap.Logger
}

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a 500, logged with detail but surfaced without it.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch utils.ErrorCode(err) {
	case utils.CodeValidation:
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case utils.CodeNotFound:
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case utils.CodeForbidden:
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())
	case utils.CodeSlotConflict:
		utils.JSONError(c, http.StatusConflict, "Slot conflict", err.Error())
	case utils.CodeGone:
		utils.JSONError(c, http.StatusGone, "Gone", err.Error())
	default:
		h.Logger.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}
