package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hireslot/handlers"
)

// RegisterRoutes wires the public candidate-facing surface and the admin
// CRUD surface onto the router.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	public := r.Group("/api/public")
	{
		public.GET("/links/:slug", h.GetLinkBySlug)
		public.GET("/availability/:linkId/month", h.GetMonthAvailability)
		public.GET("/availability/:linkId/slots", h.GetDaySlots)

		public.POST("/bookings", h.CreateBooking)
		public.GET("/bookings/:bookingId", h.GetBookingDetails)
		public.POST("/bookings/:bookingId/cancel", h.CancelBooking)
		public.POST("/bookings/:bookingId/reschedule", h.RescheduleBooking)
	}

	admin := r.Group("/api/admin")
	{
		admin.POST("/templates", h.CreateTemplate)
		admin.GET("/templates", h.ListTemplates)
		admin.GET("/templates/:id", h.GetTemplate)
		admin.PUT("/templates/:id", h.UpdateTemplate)
		admin.DELETE("/templates/:id", h.DeleteTemplate)

		admin.POST("/links", h.CreateLink)
		admin.PUT("/links/:id", h.UpdateLink)
		admin.DELETE("/links/:id", h.DeleteLink)
	}
}
