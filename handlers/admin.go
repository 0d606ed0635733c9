package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	linkRepo "hireslot/database/repository/bookinglink"
	"hireslot/models"
	"hireslot/utils"
)

// Administrative CRUD for templates and booking links. The booking engine
// owns these entities' effects on availability, so the mutation handlers
// are also where cache invalidation is triggered.

type templateRequest struct {
	Name              string                        `json:"name" binding:"required"`
	WeeklySchedule    map[string][]models.TimeRange `json:"weeklySchedule" binding:"required"`
	BlackoutDays      []string                      `json:"blackoutDays"`
	BookingCutoffDate string                        `json:"bookingCutoffDate"`
}

func (h *Handler) CreateTemplate(c *gin.Context) {
	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	now := time.Now()
	tpl := &models.Template{
		ID:                utils.NewID(utils.KindTemplate).String(),
		Name:              req.Name,
		WeeklySchedule:    req.WeeklySchedule,
		BlackoutDays:      req.BlackoutDays,
		BookingCutoffDate: req.BookingCutoffDate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := models.ValidateTemplate(tpl); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if err := h.Templates.Create(c.Request.Context(), tpl); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

func (h *Handler) GetTemplate(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsTemplateID(id) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "not a template id")
		return
	}

	tpl, err := h.Templates.GetByID(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.JSONError(c, http.StatusNotFound, "Not found", "template not found")
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *Handler) ListTemplates(c *gin.Context) {
	templates, err := h.Templates.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// UpdateTemplate replaces a template's editable fields. Existing bookings
// are authoritative: a schedule or blackout edit only changes future slot
// generation and never touches confirmed bookings.
func (h *Handler) UpdateTemplate(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsTemplateID(id) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "not a template id")
		return
	}

	prev, err := h.Templates.GetByID(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.JSONError(c, http.StatusNotFound, "Not found", "template not found")
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	tpl := &models.Template{
		ID:                prev.ID,
		Name:              req.Name,
		WeeklySchedule:    req.WeeklySchedule,
		BlackoutDays:      req.BlackoutDays,
		BookingCutoffDate: req.BookingCutoffDate,
		CreatedAt:         prev.CreatedAt,
		UpdatedAt:         time.Now(),
	}
	if err := models.ValidateTemplate(tpl); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	if err := h.Templates.Update(c.Request.Context(), tpl); err != nil {
		h.respondError(c, err)
		return
	}

	// Only availability-affecting edits pay the invalidation fan-out.
	if !reflect.DeepEqual(tpl.WeeklySchedule, prev.WeeklySchedule) ||
		!reflect.DeepEqual(tpl.BlackoutDays, prev.BlackoutDays) ||
		tpl.BookingCutoffDate != prev.BookingCutoffDate {
		h.Invalidator.TemplateChanged(c.Request.Context(), tpl.ID)
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *Handler) DeleteTemplate(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsTemplateID(id) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "not a template id")
		return
	}

	links, err := h.Links.FindByTemplateID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if len(links) > 0 {
		utils.JSONError(c, http.StatusConflict, "Template in use",
			"delete or repoint the booking links referencing this template first")
		return
	}

	if err := h.Templates.Delete(c.Request.Context(), id); errors.Is(err, mongo.ErrNoDocuments) {
		utils.JSONError(c, http.StatusNotFound, "Not found", "template not found")
		return
	} else if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type linkRequest struct {
	TemplateID            string `json:"templateId" binding:"required"`
	Name                  string `json:"name" binding:"required"`
	URLSlug               string `json:"urlSlug" binding:"required"`
	RequireAdvanceBooking bool   `json:"requireAdvanceBooking"`
	AdvanceHours          int    `json:"advanceHours"`
	IsActive              bool   `json:"isActive"`
}

func (h *Handler) CreateLink(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	now := time.Now()
	link := &models.BookingLink{
		ID:                    utils.NewID(utils.KindBookingLink).String(),
		TemplateID:            req.TemplateID,
		Name:                  req.Name,
		URLSlug:               req.URLSlug,
		DurationMinutes:       30,
		RequireAdvanceBooking: req.RequireAdvanceBooking,
		AdvanceHours:          req.AdvanceHours,
		IsActive:              req.IsActive,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := h.validateLink(c, link); err != nil {
		return
	}

	if err := h.Links.Create(c.Request.Context(), link); err != nil {
		if errors.Is(err, linkRepo.ErrSlugTaken) {
			utils.JSONError(c, http.StatusConflict, "Slug taken", "urlSlug is already in use")
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (h *Handler) UpdateLink(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsBookingLinkID(id) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "not a booking link id")
		return
	}

	prev, err := h.Links.GetByID(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.JSONError(c, http.StatusNotFound, "Not found", "booking link not found")
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	link := &models.BookingLink{
		ID:                    prev.ID,
		TemplateID:            req.TemplateID,
		Name:                  req.Name,
		URLSlug:               req.URLSlug,
		DurationMinutes:       prev.DurationMinutes,
		RequireAdvanceBooking: req.RequireAdvanceBooking,
		AdvanceHours:          req.AdvanceHours,
		IsActive:              req.IsActive,
		CreatedAt:             prev.CreatedAt,
		UpdatedAt:             time.Now(),
	}
	if err := h.validateLink(c, link); err != nil {
		return
	}

	if err := h.Links.Update(c.Request.Context(), link); err != nil {
		if errors.Is(err, linkRepo.ErrSlugTaken) {
			utils.JSONError(c, http.StatusConflict, "Slug taken", "urlSlug is already in use")
			return
		}
		h.respondError(c, err)
		return
	}

	if link.CacheAffectingFieldsChanged(prev) {
		h.Invalidator.LinkChanged(c.Request.Context(), link.ID)
	}
	c.JSON(http.StatusOK, link)
}

func (h *Handler) DeleteLink(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsBookingLinkID(id) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "not a booking link id")
		return
	}

	// Invalidate before delete so no recompute races with the removal.
	h.Invalidator.LinkDeleting(c.Request.Context(), id)

	if err := h.Links.Delete(c.Request.Context(), id); errors.Is(err, mongo.ErrNoDocuments) {
		utils.JSONError(c, http.StatusNotFound, "Not found", "booking link not found")
		return
	} else if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// validateLink checks shape and resolves the template reference; it writes
// the error response itself and returns non-nil when the request is bad.
func (h *Handler) validateLink(c *gin.Context, link *models.BookingLink) error {
	if err := models.ValidateBookingLink(link); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return err
	}
	if !utils.IsTemplateID(link.TemplateID) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "templateId is not a template id")
		return errors.New("bad template id")
	}
	if _, err := h.Templates.GetByID(c.Request.Context(), link.TemplateID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "templateId does not resolve")
		} else {
			h.respondError(c, err)
		}
		return err
	}
	return nil
}
